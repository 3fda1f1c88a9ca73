package candidature

import (
	"context"
	"time"

	"github.com/cduffaut/jobtrack/internal/models"
)

// Filter restreint une liste de candidatures; les champs nil sont ignorés
type Filter struct {
	Statut   *models.Statut
	Type     *models.CandidatureType
	DateFrom *time.Time
	DateTo   *time.Time
}

// Changes décrit une mise à jour partielle; nil signifie inchangé
type Changes struct {
	Statut      *models.Statut
	Type        *models.CandidatureType
	Poste       *string
	DateRelance *time.Time
	Notes       *string
}

// Empty indique qu'aucun champ n'est modifié
func (c Changes) Empty() bool {
	return c.Statut == nil && c.Type == nil && c.Poste == nil && c.DateRelance == nil && c.Notes == nil
}

// Stats agrège les candidatures d'un utilisateur
type Stats struct {
	TotalCandidatures int            `json:"totalCandidatures"`
	ByStatut          map[string]int `json:"byStatut"`
	ByType            map[string]int `json:"byType"`
}

// ListResult est une page de candidatures
type ListResult struct {
	Candidatures []models.Candidature `json:"candidatures"`
	Total        int                  `json:"total"`
	Page         int                  `json:"page"`
	Limit        int                  `json:"limit"`
}

// Repository accède aux candidatures et interactions.
// Toute lecture ou écriture d'une candidature filtre sur son propriétaire.
type Repository interface {
	Create(ctx context.Context, c *models.Candidature) error
	GetOwned(ctx context.Context, userID, id int) (*models.Candidature, error)
	List(ctx context.Context, userID int, f Filter, limit, offset int) ([]models.Candidature, error)
	Count(ctx context.Context, userID int, f Filter) (int, error)
	ListAll(ctx context.Context, userID int, f Filter) ([]models.Candidature, error)
	Update(ctx context.Context, userID, id int, ch Changes) error
	Delete(ctx context.Context, userID, id int) error

	CreateInteraction(ctx context.Context, i *models.Interaction) error
	DeleteInteractions(ctx context.Context, candidatureID int) error
	InteractionsFor(ctx context.Context, candidatureIDs []int) (map[int][]models.Interaction, error)

	CountByStatut(ctx context.Context, userID int) (map[string]int, error)
	CountByType(ctx context.Context, userID int) (map[string]int, error)
}

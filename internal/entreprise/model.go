package entreprise

import (
	"context"

	"github.com/cduffaut/jobtrack/internal/models"
)

// AvecCompte est une entreprise accompagnée du nombre de candidatures
// que l'utilisateur y a envoyées
type AvecCompte struct {
	models.Entreprise
	Candidatures int `json:"candidatures"`
}

// Repository interface pour accéder aux entreprises
type Repository interface {
	FindByName(ctx context.Context, nom string) (*models.Entreprise, error)
	Create(ctx context.Context, e *models.Entreprise) error
	ListForUser(ctx context.Context, userID int) ([]AvecCompte, error)
}

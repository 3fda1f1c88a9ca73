package candidature

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cduffaut/jobtrack/internal/models"
	"github.com/cduffaut/jobtrack/internal/validation"
)

// Pagination
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// EntrepriseResolver trouve ou crée une entreprise par son nom exact
type EntrepriseResolver interface {
	FindOrCreate(ctx context.Context, nom string, secteur, siteWeb *string) (*models.Entreprise, error)
}

// Service gère les candidatures d'un utilisateur et leurs interactions
type Service struct {
	repo        Repository
	entreprises EntrepriseResolver
}

// NewService crée un nouveau service de candidatures
func NewService(repo Repository, entreprises EntrepriseResolver) *Service {
	return &Service{repo: repo, entreprises: entreprises}
}

// CreateRequest contient les champs d'une nouvelle candidature
type CreateRequest struct {
	EntrepriseNom     string  `json:"entrepriseNom"`
	EntrepriseSecteur *string `json:"entrepriseSecteur"`
	EntrepriseSiteWeb *string `json:"entrepriseSiteWeb"`
	Poste             string  `json:"poste"`
	Type              string  `json:"type"`
	Statut            string  `json:"statut"`
	DateEnvoi         string  `json:"dateEnvoi"`
	CvURL             *string `json:"cvUrl"`
	LettreURL         *string `json:"lettreUrl"`
	Notes             *string `json:"notes"`
}

// UpdateRequest contient les champs modifiables; absent ou null signifie inchangé
type UpdateRequest struct {
	Statut      *string `json:"statut"`
	DateRelance *string `json:"dateRelance"`
	Notes       *string `json:"notes"`
	Poste       *string `json:"poste"`
	Type        *string `json:"type"`
}

// InteractionRequest contient les champs d'une nouvelle interaction
type InteractionRequest struct {
	Type        string  `json:"type"`
	Date        string  `json:"date"`
	Description *string `json:"description"`
}

// Create valide et enregistre une candidature pour userID
func (s *Service) Create(ctx context.Context, userID int, req CreateRequest) (*models.Candidature, error) {
	nom := validation.SanitizeInput(req.EntrepriseNom)
	poste := validation.SanitizeInput(req.Poste)

	if err := validation.Required(nom, "entrepriseNom"); err != nil {
		return nil, err
	}
	if err := validation.Required(poste, "poste"); err != nil {
		return nil, err
	}
	if err := validation.ValidateLength(poste, "poste", validation.MaxPosteLength); err != nil {
		return nil, err
	}
	if err := validation.Required(req.Type, "type"); err != nil {
		return nil, err
	}
	typ, err := validation.ValidateCandidatureType(req.Type)
	if err != nil {
		return nil, err
	}

	statut := models.StatutEnvoye
	if strings.TrimSpace(req.Statut) != "" {
		if statut, err = validation.ValidateStatut(req.Statut); err != nil {
			return nil, err
		}
	}

	dateEnvoi, err := validation.ParseDate(req.DateEnvoi, "dateEnvoi")
	if err != nil {
		return nil, err
	}
	if err := validateNotes(req.Notes); err != nil {
		return nil, err
	}

	entreprise, err := s.entreprises.FindOrCreate(ctx, nom, req.EntrepriseSecteur, req.EntrepriseSiteWeb)
	if err != nil {
		return nil, fmt.Errorf("résolution de l'entreprise: %w", err)
	}

	c := &models.Candidature{
		UserID:       userID,
		EntrepriseID: entreprise.ID,
		Poste:        poste,
		Type:         typ,
		Statut:       statut,
		DateEnvoi:    dateEnvoi,
		CvURL:        optional(req.CvURL),
		LettreURL:    optional(req.LettreURL),
		Notes:        req.Notes,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("création de la candidature: %w", err)
	}

	c.Entreprise = entreprise
	c.Interactions = []models.Interaction{}
	return c, nil
}

// List renvoie une page des candidatures de userID
func (s *Service) List(ctx context.Context, userID int, f Filter, page, limit int) (*ListResult, error) {
	page, limit = NormalizePage(page, limit)

	items, err := s.repo.List(ctx, userID, f, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	if err := s.attachInteractions(ctx, items); err != nil {
		return nil, err
	}

	return &ListResult{Candidatures: items, Total: total, Page: page, Limit: limit}, nil
}

// ListAll renvoie toutes les candidatures filtrées de userID avec leurs interactions
func (s *Service) ListAll(ctx context.Context, userID int, f Filter) ([]models.Candidature, error) {
	items, err := s.repo.ListAll(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	if err := s.attachInteractions(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID renvoie une candidature de userID avec ses interactions
func (s *Service) GetByID(ctx context.Context, userID, id int) (*models.Candidature, error) {
	c, err := s.loadOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.withInteractions(ctx, c)
}

// Update applique une mise à jour partielle
func (s *Service) Update(ctx context.Context, userID, id int, req UpdateRequest) (*models.Candidature, error) {
	if _, err := s.loadOwned(ctx, userID, id); err != nil {
		return nil, err
	}

	ch, err := parseChanges(req)
	if err != nil {
		return nil, err
	}

	if !ch.Empty() {
		if err := s.repo.Update(ctx, userID, id, ch); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, notFound()
			}
			return nil, fmt.Errorf("mise à jour de la candidature: %w", err)
		}
	}

	return s.GetByID(ctx, userID, id)
}

// Delete supprime les interactions puis la candidature
func (s *Service) Delete(ctx context.Context, userID, id int) error {
	if _, err := s.loadOwned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.DeleteInteractions(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return notFound()
		}
		return fmt.Errorf("suppression de la candidature: %w", err)
	}
	return nil
}

// AddInteraction ajoute une interaction à une candidature de userID
func (s *Service) AddInteraction(ctx context.Context, userID, candidatureID int, req InteractionRequest) (*models.Interaction, error) {
	if err := validation.Required(req.Type, "type"); err != nil {
		return nil, err
	}
	if err := validation.Required(req.Date, "date"); err != nil {
		return nil, err
	}
	typ, err := validation.ValidateInteractionType(req.Type)
	if err != nil {
		return nil, err
	}
	date, err := validation.ParseDate(req.Date, "date")
	if err != nil {
		return nil, err
	}
	if req.Description != nil {
		if err := validation.ValidateLength(*req.Description, "description", validation.MaxNotesLength); err != nil {
			return nil, err
		}
	}

	if _, err := s.loadOwned(ctx, userID, candidatureID); err != nil {
		return nil, err
	}

	i := &models.Interaction{
		CandidatureID: candidatureID,
		Type:          typ,
		Date:          date,
		Description:   req.Description,
	}
	if err := s.repo.CreateInteraction(ctx, i); err != nil {
		return nil, fmt.Errorf("création de l'interaction: %w", err)
	}
	return i, nil
}

// StatsSummary compte les candidatures de userID par statut et par type
func (s *Service) StatsSummary(ctx context.Context, userID int) (*Stats, error) {
	total, err := s.repo.Count(ctx, userID, Filter{})
	if err != nil {
		return nil, err
	}
	byStatut, err := s.repo.CountByStatut(ctx, userID)
	if err != nil {
		return nil, err
	}
	byType, err := s.repo.CountByType(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Stats{TotalCandidatures: total, ByStatut: byStatut, ByType: byType}, nil
}

// loadOwned est le seul point de contrôle de propriété
func (s *Service) loadOwned(ctx context.Context, userID, id int) (*models.Candidature, error) {
	c, err := s.repo.GetOwned(ctx, userID, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, notFound()
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) withInteractions(ctx context.Context, c *models.Candidature) (*models.Candidature, error) {
	items := []models.Candidature{*c}
	if err := s.attachInteractions(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (s *Service) attachInteractions(ctx context.Context, items []models.Candidature) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]int, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}

	byCandidature, err := s.repo.InteractionsFor(ctx, ids)
	if err != nil {
		return err
	}

	for i := range items {
		items[i].Interactions = byCandidature[items[i].ID]
		if items[i].Interactions == nil {
			items[i].Interactions = []models.Interaction{}
		}
	}
	return nil
}

// NormalizePage applique les valeurs par défaut et la borne de limit
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// ParseFilter valide les filtres statut et type reçus en query string
func ParseFilter(statut, typ string) (Filter, error) {
	var f Filter
	if statut = strings.TrimSpace(statut); statut != "" {
		st, err := validation.ValidateStatut(statut)
		if err != nil {
			return f, err
		}
		f.Statut = &st
	}
	if typ = strings.TrimSpace(typ); typ != "" {
		t, err := validation.ValidateCandidatureType(typ)
		if err != nil {
			return f, err
		}
		f.Type = &t
	}
	return f, nil
}

func parseChanges(req UpdateRequest) (Changes, error) {
	var ch Changes

	if req.Statut != nil {
		st, err := validation.ValidateStatut(*req.Statut)
		if err != nil {
			return ch, err
		}
		ch.Statut = &st
	}
	if req.Type != nil {
		t, err := validation.ValidateCandidatureType(*req.Type)
		if err != nil {
			return ch, err
		}
		ch.Type = &t
	}
	if req.Poste != nil {
		poste := validation.SanitizeInput(*req.Poste)
		if err := validation.Required(poste, "poste"); err != nil {
			return ch, err
		}
		if err := validation.ValidateLength(poste, "poste", validation.MaxPosteLength); err != nil {
			return ch, err
		}
		ch.Poste = &poste
	}
	// une date de relance vide laisse la valeur actuelle
	if req.DateRelance != nil && strings.TrimSpace(*req.DateRelance) != "" {
		d, err := validation.ParseDate(*req.DateRelance, "dateRelance")
		if err != nil {
			return ch, err
		}
		ch.DateRelance = &d
	}
	if req.Notes != nil {
		if err := validateNotes(req.Notes); err != nil {
			return ch, err
		}
		ch.Notes = req.Notes
	}

	return ch, nil
}

func validateNotes(notes *string) error {
	if notes == nil {
		return nil
	}
	return validation.ValidateLength(*notes, "notes", validation.MaxNotesLength)
}

func optional(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func notFound() error {
	return models.NewError(models.ErrNotFound, "Candidature non trouvée")
}

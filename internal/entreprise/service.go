package entreprise

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cduffaut/jobtrack/internal/models"
)

// Service gère les entreprises partagées entre utilisateurs
type Service struct {
	repo Repository
}

// NewService crée un nouveau service d'entreprises
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// FindOrCreate renvoie l'entreprise portant ce nom exact, ou la crée.
// Une entreprise existante n'est pas modifiée.
func (s *Service) FindOrCreate(ctx context.Context, nom string, secteur, siteWeb *string) (*models.Entreprise, error) {
	nom = strings.TrimSpace(nom)

	existing, err := s.repo.FindByName(ctx, nom)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	e := &models.Entreprise{
		Nom:     nom,
		Secteur: nonEmpty(secteur),
		SiteWeb: nonEmpty(siteWeb),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("création de l'entreprise %q: %w", nom, err)
	}
	return e, nil
}

// List renvoie les entreprises de l'utilisateur avec leur nombre de candidatures
func (s *Service) List(ctx context.Context, userID int) ([]AvecCompte, error) {
	return s.repo.ListForUser(ctx, userID)
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

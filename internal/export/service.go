package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cduffaut/jobtrack/internal/candidature"
	"github.com/cduffaut/jobtrack/internal/models"
	"github.com/cduffaut/jobtrack/internal/validation"
)

// Candidatures regroupe les opérations du service de candidatures utilisées ici
type Candidatures interface {
	ListAll(ctx context.Context, userID int, f candidature.Filter) ([]models.Candidature, error)
	Create(ctx context.Context, userID int, req candidature.CreateRequest) (*models.Candidature, error)
}

// Service exporte et importe les candidatures au format CSV
type Service struct {
	candidatures Candidatures
}

// NewService crée le service d'export
func NewService(candidatures Candidatures) *Service {
	return &Service{candidatures: candidatures}
}

// Query regroupe les filtres bruts de l'export filtré
type Query struct {
	Statut    string
	Type      string
	DateDebut string
	DateFin   string
}

// ParseQuery valide les filtres; une date de fin sans heure couvre toute la journée
func ParseQuery(q Query) (candidature.Filter, error) {
	f, err := candidature.ParseFilter(q.Statut, q.Type)
	if err != nil {
		return f, err
	}

	if strings.TrimSpace(q.DateDebut) != "" {
		from, err := validation.ParseDate(q.DateDebut, "dateDebut")
		if err != nil {
			return f, err
		}
		f.DateFrom = &from
	}

	if strings.TrimSpace(q.DateFin) != "" {
		to, err := validation.ParseDate(q.DateFin, "dateFin")
		if err != nil {
			return f, err
		}
		if validation.IsDateOnly(q.DateFin) {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		f.DateTo = &to
	}

	return f, nil
}

// ExportCSV écrit dans w les candidatures de userID correspondant au filtre
func (s *Service) ExportCSV(ctx context.Context, userID int, f candidature.Filter, w io.Writer) error {
	items, err := s.candidatures.ListAll(ctx, userID, f)
	if err != nil {
		return fmt.Errorf("chargement des candidatures: %w", err)
	}
	return WriteCSV(w, items)
}

// ImportCSV crée une candidature par ligne valide et signale les autres
func (s *Service) ImportCSV(ctx context.Context, userID int, r io.Reader) (*ImportResult, error) {
	result := &ImportResult{Errors: []RowError{}}

	rows, err := parseImport(r, result)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		_, err := s.candidatures.Create(ctx, userID, row.req)
		if err == nil {
			result.Imported++
			continue
		}

		var ve validation.ValidationError
		if errors.As(err, &ve) {
			result.skip(row.line, ve.Error())
			continue
		}
		return nil, fmt.Errorf("import ligne %d: %w", row.line, err)
	}

	return result, nil
}

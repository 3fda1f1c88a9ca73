package notifications

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cduffaut/jobtrack/internal/candidature"
	"github.com/cduffaut/jobtrack/internal/models"
)

// Candidatures fournit les candidatures d'un utilisateur avec leurs interactions
type Candidatures interface {
	ListAll(ctx context.Context, userID int, f candidature.Filter) ([]models.Candidature, error)
}

// Service calcule les rappels d'un utilisateur
type Service struct {
	candidatures Candidatures
	now          func() time.Time
}

// NewService crée un nouveau service de notifications
func NewService(candidatures Candidatures) *Service {
	return &Service{
		candidatures: candidatures,
		now:          time.Now,
	}
}

// GetNotifications renvoie les entretiens et relances des prochaines horizon heures
func (s *Service) GetNotifications(ctx context.Context, userID int, horizon time.Duration) ([]Notification, error) {
	cands, err := s.candidatures.ListAll(ctx, userID, candidature.Filter{})
	if err != nil {
		return nil, fmt.Errorf("chargement des candidatures: %w", err)
	}
	return Generate(cands, s.now(), horizon), nil
}

// Generate dérive les rappels des candidatures, triés par date croissante.
// Seules les échéances strictement futures et dans l'horizon sont retenues.
func Generate(cands []models.Candidature, now time.Time, horizon time.Duration) []Notification {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}

	notifications := []Notification{}
	for _, c := range cands {
		where := c.Poste
		if c.Entreprise != nil {
			where = fmt.Sprintf("%s chez %s", c.Poste, c.Entreprise.Nom)
		}

		for _, it := range c.Interactions {
			if it.Type != models.InteractionEntretien {
				continue
			}
			left := it.Date.Sub(now)
			if left <= 0 || left > horizon {
				continue
			}
			n := Notification{
				ID:            fmt.Sprintf("entretien-%d-%d", c.ID, it.ID),
				Type:          NotificationEntretien,
				Title:         "Entretien prévu",
				Message:       "Entretien pour le poste de " + where,
				CandidatureID: c.ID,
				Date:          it.Date,
			}
			switch {
			case left <= urgentWithin:
				n.Type = NotificationUrgence
				n.Title = "Entretien aujourd'hui ou demain"
			case left <= soonWithin:
				n.Title = "Entretien dans 2 jours"
			}
			notifications = append(notifications, n)
		}

		if c.DateRelance == nil {
			continue
		}
		left := c.DateRelance.Sub(now)
		if left <= 0 || left > horizon {
			continue
		}
		n := Notification{
			ID:            fmt.Sprintf("relance-%d-%d", c.ID, c.DateRelance.Unix()),
			Type:          NotificationRelance,
			Title:         "Relance à faire",
			Message:       "Relance pour " + where,
			CandidatureID: c.ID,
			Date:          *c.DateRelance,
		}
		switch {
		case left <= urgentWithin:
			n.Type = NotificationUrgence
			n.Title = "Relance aujourd'hui ou demain"
		case left <= soonWithin:
			n.Title = "Relance à faire dans 2 jours"
		}
		notifications = append(notifications, n)
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].Date.Before(notifications[j].Date)
	})
	return notifications
}

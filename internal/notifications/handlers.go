package notifications

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cduffaut/jobtrack/internal/auth"
	"github.com/cduffaut/jobtrack/internal/response"
	"github.com/cduffaut/jobtrack/internal/validation"
)

// Handlers gère les requêtes HTTP pour les notifications
type Handlers struct {
	service *Service
}

// NewHandlers crée de nouveaux handlers pour les notifications
func NewHandlers(service *Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// GetNotificationsHandler GET /api/notifications?horizon=<heures>
func (h *Handlers) GetNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Non authentifié")
		return
	}

	horizon, err := parseHorizon(r.URL.Query().Get("horizon"))
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	notifications, err := h.service.GetNotifications(r.Context(), userID, horizon)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// parseHorizon lit un nombre d'heures, plafonné à MaxHorizon
func parseHorizon(value string) (time.Duration, error) {
	if value == "" {
		return DefaultHorizon, nil
	}
	hours, err := strconv.Atoi(value)
	if err != nil || hours <= 0 {
		return 0, validation.New("horizon", "horizon doit être un nombre d'heures positif")
	}
	// plafond appliqué avant la conversion pour éviter un débordement
	if hours > int(MaxHorizon/time.Hour) {
		return MaxHorizon, nil
	}
	return time.Duration(hours) * time.Hour, nil
}

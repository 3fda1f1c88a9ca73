package entreprise

import (
	"net/http"

	"github.com/cduffaut/jobtrack/internal/auth"
	"github.com/cduffaut/jobtrack/internal/response"
)

// Handlers expose les entreprises en lecture seule
type Handlers struct {
	service *Service
}

// NewHandlers crée les handlers d'entreprises
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// ListHandler GET /api/entreprises
func (h *Handlers) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Non authentifié")
		return
	}

	list, err := h.service.List(r.Context(), userID)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{"entreprises": list})
}

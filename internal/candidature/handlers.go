package candidature

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cduffaut/jobtrack/internal/auth"
	"github.com/cduffaut/jobtrack/internal/response"
	"goji.io/pat"
)

const maxBodySize = 1 << 20

// Handlers expose les candidatures sur l'API REST
type Handlers struct {
	service *Service
}

// NewHandlers crée les handlers de candidatures
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// CreateHandler POST /api/candidatures
func (h *Handlers) CreateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateRequest
	if !decode(w, r, &req) {
		return
	}

	c, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, c)
}

// ListHandler GET /api/candidatures
func (h *Handlers) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	f, err := ParseFilter(q.Get("statut"), q.Get("type"))
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	// valeurs non numériques: on retombe sur les valeurs par défaut
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	result, err := h.service.List(r.Context(), userID, f, page, limit)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// GetHandler GET /api/candidatures/:id
func (h *Handlers) GetHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	c, err := h.service.GetByID(r.Context(), userID, id)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, c)
}

// UpdateHandler PATCH /api/candidatures/:id
func (h *Handlers) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateRequest
	if !decode(w, r, &req) {
		return
	}

	c, err := h.service.Update(r.Context(), userID, id, req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, c)
}

// DeleteHandler DELETE /api/candidatures/:id
func (h *Handlers) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		response.FromError(w, r, err)
		return
	}

	response.Message(w, http.StatusOK, "Candidature supprimée avec succès.")
}

// AddInteractionHandler POST /api/candidatures/:id/interactions
func (h *Handlers) AddInteractionHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req InteractionRequest
	if !decode(w, r, &req) {
		return
	}

	i, err := h.service.AddInteraction(r.Context(), userID, id, req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, i)
}

// StatsHandler GET /api/candidatures/stats/summary
func (h *Handlers) StatsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	stats, err := h.service.StatsSummary(r.Context(), userID)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, stats)
}

func requireUser(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Non authentifié")
	}
	return userID, ok
}

// un identifiant illisible ne peut désigner aucune candidature
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(pat.Param(r, "id"))
	if err != nil || id < 1 {
		response.FromError(w, r, notFound())
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(v); err != nil {
		response.Error(w, http.StatusBadRequest, "Format de requête invalide")
		return false
	}
	return true
}

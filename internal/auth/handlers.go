package auth

import (
	"encoding/json"
	"net/http"

	"github.com/cduffaut/jobtrack/internal/response"
)

// taille max d'un corps JSON d'authentification
const maxBodySize = 1 << 20

// Handlers gère les requêtes HTTP pour l'authentification
type Handlers struct {
	service *Service
}

// NewHandlers crée des nouveaux gestionnaires pour l'authentification
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterHandler gère l'inscription
func (h *Handlers) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Format de requête invalide")
		return
	}

	result, err := h.service.Register(r.Context(), req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, result)
}

// LoginHandler gère la connexion
func (h *Handlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Format de requête invalide")
		return
	}

	result, err := h.service.Login(r.Context(), req)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// MeHandler renvoie le profil de l'utilisateur connecté
func (h *Handlers) MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Non authentifié")
		return
	}

	u, err := h.service.GetCurrentUser(r.Context(), userID)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{"user": u})
}

// LogoutHandler gère la déconnexion.
// Le token reste valide jusqu'à son expiration, le client l'oublie.
func (h *Handlers) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	response.Message(w, http.StatusOK, "Déconnexion réussie")
}

package upload

import (
	"log/slog"
	"net/http"

	"github.com/cduffaut/jobtrack/internal/auth"
	"github.com/cduffaut/jobtrack/internal/response"
	"github.com/cduffaut/jobtrack/internal/security"
)

// marge pour les en-têtes multipart au-delà de la taille du fichier
const formOverhead = 1 << 20

// Handlers gère l'upload des CV et lettres
type Handlers struct {
	storage *Storage
	maxSize int64
}

// NewHandlers crée les handlers d'upload
func NewHandlers(storage *Storage, maxSize int64) *Handlers {
	if maxSize <= 0 {
		maxSize = security.MaxFileSize
	}
	return &Handlers{storage: storage, maxSize: maxSize}
}

// UploadHandler POST /api/upload (multipart: file, type)
func (h *Handlers) UploadHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Non authentifié")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+formOverhead)
	if err := r.ParseMultipartForm(h.maxSize + formOverhead); err != nil {
		response.Error(w, http.StatusBadRequest, "Fichier trop volumineux ou formulaire invalide")
		return
	}
	defer r.MultipartForm.RemoveAll()

	kind, err := ParseKind(r.FormValue("type"))
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Aucun fichier fourni")
		return
	}
	defer file.Close()

	if err := security.ValidateDocument(header, h.maxSize); err != nil {
		slog.WarnContext(r.Context(), "upload refusé",
			slog.Int("user_id", userID),
			slog.String("filename", header.Filename),
			slog.String("content_type", header.Header.Get("Content-Type")),
			slog.Int64("size", header.Size),
			slog.Any("error", err),
		)
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, err := h.storage.Save(userID, kind, header.Filename, file)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"message":  "Fichier uploadé avec succès",
		"url":      stored.URL,
		"filename": stored.Filename,
		"size":     stored.Size,
	})
}

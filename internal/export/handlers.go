package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cduffaut/jobtrack/internal/auth"
	"github.com/cduffaut/jobtrack/internal/candidature"
	"github.com/cduffaut/jobtrack/internal/response"
)

// taille max d'un fichier CSV importé
const maxImportSize = 1 << 20

// Handlers expose l'export et l'import CSV
type Handlers struct {
	service *Service
}

// NewHandlers crée les handlers d'export
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// ExportHandler GET /api/export/candidatures/csv
func (h *Handlers) ExportHandler(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, candidature.Filter{}, "candidatures")
}

// ExportFilteredHandler GET /api/export/candidatures/csv/filtered
func (h *Handlers) ExportFilteredHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, err := ParseQuery(Query{
		Statut:    q.Get("statut"),
		Type:      q.Get("type"),
		DateDebut: q.Get("dateDebut"),
		DateFin:   q.Get("dateFin"),
	})
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	h.export(w, r, f, "candidatures_filtrees")
}

func (h *Handlers) export(w http.ResponseWriter, r *http.Request, f candidature.Filter, prefix string) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Non authentifié")
		return
	}

	// le fichier est construit en entier pour pouvoir répondre en JSON sur erreur
	var buf bytes.Buffer
	if err := h.service.ExportCSV(r.Context(), userID, f, &buf); err != nil {
		response.FromError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_%d.csv"`, prefix, time.Now().UnixMilli()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.WarnContext(r.Context(), "envoi du fichier CSV interrompu",
			slog.Int("user_id", userID),
			slog.Any("error", err),
		)
	}
}

// ImportHandler POST /api/import/candidatures/csv (champ multipart "file")
func (h *Handlers) ImportHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Non authentifié")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize+(64<<10))
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		response.Error(w, http.StatusBadRequest, "Fichier trop volumineux ou formulaire invalide")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.FieldError(w, http.StatusBadRequest, "file", "Aucun fichier fourni")
		return
	}
	defer file.Close()

	if header.Size > maxImportSize {
		response.FieldError(w, http.StatusBadRequest, "file", "Fichier trop volumineux (max 1 Mo)")
		return
	}

	result, err := h.service.ImportCSV(r.Context(), userID, file)
	if err != nil {
		response.FromError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Package response centralise l'écriture des réponses JSON de l'API.
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cduffaut/jobtrack/internal/ctxutil"
	"github.com/cduffaut/jobtrack/internal/models"
	"github.com/cduffaut/jobtrack/internal/validation"
)

// message générique des erreurs internes, le détail reste dans les logs
const internalMessage = "Erreur serveur"

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// JSON écrit v encodé en JSON avec le code donné
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encodage de la réponse", slog.Any("error", err))
	}
}

// Message écrit {"message": msg}
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// Error écrit {"error": msg}
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorBody{Error: msg})
}

// FieldError écrit {"error": msg, "field": field}
func FieldError(w http.ResponseWriter, status int, field, msg string) {
	JSON(w, status, errorBody{Error: msg, Field: field})
}

// FromError traduit une erreur de service en réponse HTTP
func FromError(w http.ResponseWriter, r *http.Request, err error) {
	var ve validation.ValidationError
	if errors.As(err, &ve) {
		FieldError(w, http.StatusBadRequest, ve.Field, ve.Message)
		return
	}

	var ves validation.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		FieldError(w, http.StatusBadRequest, ves[0].Field, ves.Error())
		return
	}

	status := Status(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "erreur interne",
			slog.Any("error", err),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
		)
		Error(w, status, internalMessage)
		return
	}

	Error(w, status, clientMessage(err))
}

// Status renvoie le code HTTP associé à la catégorie de l'erreur
func Status(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func clientMessage(err error) string {
	var me *models.Error
	if errors.As(err, &me) {
		return me.Message
	}

	for _, sentinel := range []error{models.ErrValidation, models.ErrUnauthorized, models.ErrNotFound, models.ErrConflict} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return internalMessage
}

package middleware

import (
	"net/http"

	"github.com/cduffaut/jobtrack/internal/ctxutil"
	"github.com/google/uuid"
)

// RequestIDHeader est l'en-tête propagé au client
const RequestIDHeader = "X-Request-Id"

// longueur max d'un identifiant fourni par le client
const maxRequestIDLength = 128

// RequestID réutilise l'en-tête du client ou en génère un
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" || len(id) > maxRequestIDLength {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctxutil.WithRequestID(r.Context(), id)))
		})
	}
}

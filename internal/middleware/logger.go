package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cduffaut/jobtrack/internal/ctxutil"
)

// Logger journalise chaque requête: méthode, chemin, statut, durée, request_id
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			}
			if sw.userID > 0 {
				attrs = append(attrs, slog.Int("user_id", sw.userID))
			}

			level := slog.LevelInfo
			if sw.status >= 500 {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "http.request", attrs...)
		})
	}
}

// statusWriter capture le statut et l'utilisateur authentifié plus bas dans la chaîne
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	userID      int
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

// Unwrap permet à http.ResponseController d'atteindre le writer d'origine
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// userRecorder est implémenté par statusWriter
type userRecorder interface {
	recordUser(id int)
}

func (w *statusWriter) recordUser(id int) { w.userID = id }

package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cduffaut/jobtrack/internal/response"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

// healthHandler GET /api/health, 503 si la base ne répond pas
func healthHandler(db pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			slog.WarnContext(r.Context(), "base de données injoignable", slog.Any("error", err))
			response.JSON(w, http.StatusServiceUnavailable, map[string]string{
				"message":  "API fonctionne !",
				"database": "indisponible",
			})
			return
		}

		response.JSON(w, http.StatusOK, map[string]string{
			"message":  "API fonctionne !",
			"database": "connectée",
		})
	}
}

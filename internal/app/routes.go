package app

import (
	"log/slog"
	"net/http"

	"github.com/cduffaut/jobtrack/internal/auth"
	"github.com/cduffaut/jobtrack/internal/candidature"
	"github.com/cduffaut/jobtrack/internal/config"
	"github.com/cduffaut/jobtrack/internal/entreprise"
	"github.com/cduffaut/jobtrack/internal/export"
	"github.com/cduffaut/jobtrack/internal/middleware"
	"github.com/cduffaut/jobtrack/internal/notifications"
	"github.com/cduffaut/jobtrack/internal/upload"
	"goji.io"
	"goji.io/pat"
)

// routeHandlers regroupe ce dont le routeur a besoin
type routeHandlers struct {
	auth          *auth.Handlers
	candidatures  *candidature.Handlers
	entreprises   *entreprise.Handlers
	export        *export.Handlers
	upload        *upload.Handlers
	notifications *notifications.Handlers
	health        http.HandlerFunc
	tokens        middleware.TokenValidator
	uploadDir     string
}

// newRouter configure toutes les routes de l'application
func newRouter(cfg *config.Config, logger *slog.Logger, h routeHandlers) http.Handler {
	mux := goji.NewMux()
	mux.Use(middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.SecurityHeaders,
	))

	// routes publiques
	mux.HandleFunc(pat.Get("/api/health"), h.health)
	mux.HandleFunc(pat.Post("/api/auth/register"), h.auth.RegisterHandler)
	mux.HandleFunc(pat.Post("/api/auth/login"), h.auth.LoginHandler)
	mux.HandleFunc(pat.Post("/api/auth/logout"), h.auth.LogoutHandler)

	// fichiers uploadés
	mux.Handle(pat.Get("/uploads/*"), http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.uploadDir))))

	// routes protégées
	protectedMux := goji.SubMux()
	protectedMux.Use(middleware.RequireAuth(h.tokens))

	protectedMux.HandleFunc(pat.Get("/api/auth/me"), h.auth.MeHandler)

	// stats avant /:id
	protectedMux.HandleFunc(pat.Get("/api/candidatures/stats/summary"), h.candidatures.StatsHandler)
	protectedMux.HandleFunc(pat.Post("/api/candidatures"), h.candidatures.CreateHandler)
	protectedMux.HandleFunc(pat.Get("/api/candidatures"), h.candidatures.ListHandler)
	protectedMux.HandleFunc(pat.Get("/api/candidatures/:id"), h.candidatures.GetHandler)
	protectedMux.HandleFunc(pat.Patch("/api/candidatures/:id"), h.candidatures.UpdateHandler)
	protectedMux.HandleFunc(pat.Delete("/api/candidatures/:id"), h.candidatures.DeleteHandler)
	protectedMux.HandleFunc(pat.Post("/api/candidatures/:id/interactions"), h.candidatures.AddInteractionHandler)

	protectedMux.HandleFunc(pat.Get("/api/entreprises"), h.entreprises.ListHandler)

	protectedMux.HandleFunc(pat.Get("/api/export/candidatures/csv/filtered"), h.export.ExportFilteredHandler)
	protectedMux.HandleFunc(pat.Get("/api/export/candidatures/csv"), h.export.ExportHandler)
	protectedMux.HandleFunc(pat.Post("/api/import/candidatures/csv"), h.export.ImportHandler)

	protectedMux.HandleFunc(pat.Post("/api/upload"), h.upload.UploadHandler)

	protectedMux.HandleFunc(pat.Get("/api/notifications"), h.notifications.GetNotificationsHandler)

	// add les routes protegees au mux principal
	mux.Handle(pat.New("/*"), protectedMux)

	return mux
}

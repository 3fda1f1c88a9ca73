// Package app assemble la configuration, la base, les services et les routes.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cduffaut/jobtrack/internal/auth"
	"github.com/cduffaut/jobtrack/internal/candidature"
	"github.com/cduffaut/jobtrack/internal/config"
	"github.com/cduffaut/jobtrack/internal/database"
	"github.com/cduffaut/jobtrack/internal/entreprise"
	"github.com/cduffaut/jobtrack/internal/export"
	"github.com/cduffaut/jobtrack/internal/notifications"
	"github.com/cduffaut/jobtrack/internal/upload"
	"github.com/cduffaut/jobtrack/internal/user"
)

// App représente l'API de suivi de candidatures
type App struct {
	config  *config.Config
	logger  *slog.Logger
	db      *sql.DB
	handler http.Handler
}

// New crée une nouvelle instance de l'application
func New(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		config: cfg,
		logger: logger,
	}
}

// Initialize ouvre la base, applique les migrations et construit les routes
func (a *App) Initialize(ctx context.Context) error {
	db, err := database.Connect(ctx, a.config.Database)
	if err != nil {
		return fmt.Errorf("erreur lors de la connexion à la base de données: %w", err)
	}
	a.db = db

	results, err := database.RunMigrations(ctx, db)
	if err != nil {
		return err
	}
	for _, res := range results {
		a.logger.Info("migration appliquée",
			slog.Int64("version", res.Source.Version),
			slog.Duration("duration", res.Duration),
		)
	}

	storage, err := upload.NewStorage(a.config.Upload.Dir)
	if err != nil {
		return err
	}

	// repositories
	userRepo := user.NewPostgresRepository(db)
	entrepriseRepo := entreprise.NewPostgresRepository(db)
	candidatureRepo := candidature.NewPostgresRepository(db)

	// services
	tokens := auth.NewTokenManager(a.config.Auth.JWTSecret, a.config.Auth.Issuer, a.config.Auth.TokenTTL)
	authService := auth.NewService(userRepo, tokens)
	entrepriseService := entreprise.NewService(entrepriseRepo)
	candidatureService := candidature.NewService(candidatureRepo, entrepriseService)

	a.handler = newRouter(a.config, a.logger, routeHandlers{
		auth:          auth.NewHandlers(authService),
		candidatures:  candidature.NewHandlers(candidatureService),
		entreprises:   entreprise.NewHandlers(entrepriseService),
		export:        export.NewHandlers(export.NewService(candidatureService)),
		upload:        upload.NewHandlers(storage, a.config.Upload.MaxSize),
		notifications: notifications.NewHandlers(notifications.NewService(candidatureService)),
		health:        healthHandler(db),
		tokens:        authService,
		uploadDir:     storage.BaseDir(),
	})

	return nil
}

// Handler renvoie le handler HTTP complet, middlewares compris
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run démarre le serveur HTTP et l'arrête proprement quand ctx est annulé
func (a *App) Run(ctx context.Context) error {
	cfg := a.config.Server
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      a.handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(a.logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("serveur démarré", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("erreur du serveur HTTP: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("arrêt du serveur")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("erreur lors de l'arrêt du serveur: %w", err)
	}
	return nil
}

// Close ferme toutes les ressources ouvertes
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("fermeture de la base", slog.Any("error", err))
		}
	}
}

// Serve initialise l'application et sert jusqu'à l'annulation de ctx
func Serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	a := New(cfg, logger)
	defer a.Close()

	if err := a.Initialize(ctx); err != nil {
		return err
	}
	return a.Run(ctx)
}

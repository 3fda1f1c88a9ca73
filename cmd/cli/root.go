package main

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/cduffaut/jobtrack/internal/app"
	"github.com/cduffaut/jobtrack/internal/config"
	"github.com/cduffaut/jobtrack/internal/database"
	"github.com/spf13/cobra"
)

// env regroupe ce que chaque sous-commande charge au démarrage
type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:          "jobtrack",
		Short:        "API de suivi de candidatures",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.logger = app.NewLogger(cfg.Log)
			return nil
		},
	}

	root.AddCommand(
		newMigrateCmd(e),
		newSeedCmd(e),
		newServeCmd(e),
	)
	return root
}

// connect ouvre la base configurée
func (e *env) connect(ctx context.Context) (*sql.DB, error) {
	return database.Connect(ctx, e.cfg.Database)
}

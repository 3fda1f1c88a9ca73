package main

import (
	"fmt"
	"log/slog"

	"github.com/cduffaut/jobtrack/internal/database"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

func newMigrateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Gère les migrations du schéma PostgreSQL",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Applique toutes les migrations en attente",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd, e, func(p *goose.Provider) error {
					results, err := p.Up(cmd.Context())
					logResults(e.logger, results)
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Annule la dernière migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd, e, func(p *goose.Provider) error {
					res, err := p.Down(cmd.Context())
					if res != nil {
						logResults(e.logger, []*goose.MigrationResult{res})
					}
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Affiche l'état des migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMigrator(cmd, e, func(p *goose.Provider) error {
					statuses, err := p.Status(cmd.Context())
					if err != nil {
						return err
					}
					out := cmd.OutOrStdout()
					for _, s := range statuses {
						applied := "en attente"
						if s.State == goose.StateApplied {
							applied = "appliquée le " + s.AppliedAt.Format("02/01/2006 15:04")
						}
						fmt.Fprintf(out, "%05d  %-45s %s\n", s.Source.Version, s.Source.Path, applied)
					}
					return nil
				})
			},
		},
	)
	return cmd
}

func withMigrator(cmd *cobra.Command, e *env, fn func(*goose.Provider) error) error {
	db, err := e.connect(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := database.NewMigrator(db)
	if err != nil {
		return err
	}
	return fn(provider)
}

func logResults(logger *slog.Logger, results []*goose.MigrationResult) {
	if len(results) == 0 {
		logger.Info("aucune migration à appliquer")
	}
	for _, r := range results {
		logger.Info("migration",
			slog.Int64("version", r.Source.Version),
			slog.String("direction", r.Direction),
			slog.Duration("duration", r.Duration),
		)
	}
}

package main

import (
	"fmt"
	"time"

	"github.com/cduffaut/jobtrack/internal/database"
	"github.com/cduffaut/jobtrack/internal/seed"
	"github.com/spf13/cobra"
)

func newSeedCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Remplace le contenu de la base par des données de démonstration",
		Long: `Vide les tables puis crée trois comptes (mot de passe "password123"),
cinq entreprises, des candidatures et leurs interactions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := e.connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			if _, err := database.RunMigrations(ctx, db); err != nil {
				return err
			}

			sum, err := seed.Run(ctx, db, time.Now())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d utilisateurs, %d entreprises, %d candidatures, %d interactions créés\n",
				sum.Users, sum.Entreprises, sum.Candidatures, sum.Interactions)
			return nil
		},
	}
}

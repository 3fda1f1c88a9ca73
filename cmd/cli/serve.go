package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/cduffaut/jobtrack/internal/app"
	"github.com/spf13/cobra"
)

func newServeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Lance le serveur HTTP de l'API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Serve(ctx, e.cfg, e.logger)
		},
	}
}

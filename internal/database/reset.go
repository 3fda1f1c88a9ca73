package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Execer est satisfait par *sql.DB et *sql.Tx
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Reset vide toutes les tables métier et remet les séquences à zéro
func Reset(ctx context.Context, db Execer) error {
	_, err := db.ExecContext(ctx, `TRUNCATE interactions, candidatures, entreprises, users RESTART IDENTITY CASCADE`)
	if err != nil {
		return fmt.Errorf("erreur lors de la remise à zéro: %w", err)
	}
	return nil
}

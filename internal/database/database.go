package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/cduffaut/jobtrack/internal/config"
	_ "github.com/lib/pq" // Driver PostgreSQL
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Migrations renvoie les scripts de migration embarqués dans le binaire
func Migrations() fs.FS {
	sub, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		// le chemin est fixé à la compilation
		panic(err)
	}
	return sub
}

// NewMigrator crée un provider goose sur les migrations embarquées
func NewMigrator(db *sql.DB) (*goose.Provider, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, Migrations())
	if err != nil {
		return nil, fmt.Errorf("erreur lors de l'initialisation des migrations: %w", err)
	}
	return provider, nil
}

// RunMigrations applique toutes les migrations en attente
func RunMigrations(ctx context.Context, db *sql.DB) ([]*goose.MigrationResult, error) {
	provider, err := NewMigrator(db)
	if err != nil {
		return nil, err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return results, fmt.Errorf("erreur lors de l'exécution des migrations: %w", err)
	}

	return results, nil
}

// Connect établit une connexion à la base de données
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("erreur d'ouverture de connexion à la base de données: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("erreur de ping à la base de données: %w", err)
	}

	return db, nil
}

package entreprise

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/cduffaut/jobtrack/internal/database"
	"github.com/cduffaut/jobtrack/internal/models"
)

// PostgresRepository implémente Repository avec PostgreSQL
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository crée un nouveau repository d'entreprises
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByName cherche la première entreprise portant exactement ce nom
func (r *PostgresRepository) FindByName(ctx context.Context, nom string) (*models.Entreprise, error) {
	query, args, err := database.Builder().
		Select("id", "nom", "secteur", "site_web", "notes").
		From("entreprises").
		Where(sq.Eq{"nom": nom}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("construction de la requête: %w", err)
	}

	e := &models.Entreprise{}
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.Nom, &e.Secteur, &e.SiteWeb, &e.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("recherche de l'entreprise %q: %w", nom, err)
	}
	return e, nil
}

// Create ajoute une entreprise
func (r *PostgresRepository) Create(ctx context.Context, e *models.Entreprise) error {
	query, args, err := database.Builder().
		Insert("entreprises").
		Columns("nom", "secteur", "site_web", "notes").
		Values(e.Nom, e.Secteur, e.SiteWeb, e.Notes).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("construction de la requête: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&e.ID); err != nil {
		return fmt.Errorf("insertion de l'entreprise: %w", err)
	}
	return nil
}

// ListForUser liste les entreprises citées par les candidatures de l'utilisateur
func (r *PostgresRepository) ListForUser(ctx context.Context, userID int) ([]AvecCompte, error) {
	query, args, err := database.Builder().
		Select("e.id", "e.nom", "e.secteur", "e.site_web", "e.notes", "COUNT(c.id)").
		From("entreprises e").
		Join("candidatures c ON c.entreprise_id = e.id").
		Where(sq.Eq{"c.user_id": userID}).
		GroupBy("e.id").
		OrderBy("e.nom ASC", "e.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("construction de la requête: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("liste des entreprises: %w", err)
	}
	defer rows.Close()

	list := []AvecCompte{}
	for rows.Next() {
		var item AvecCompte
		if err := rows.Scan(&item.ID, &item.Nom, &item.Secteur, &item.SiteWeb, &item.Notes, &item.Candidatures); err != nil {
			return nil, fmt.Errorf("lecture d'une entreprise: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

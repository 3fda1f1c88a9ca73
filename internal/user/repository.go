package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cduffaut/jobtrack/internal/models"
	"github.com/lib/pq"
)

// code SQLSTATE unique_violation
const uniqueViolation = "23505"

// PostgresRepository est l'implémentation PostgreSQL du Repository
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository crée un nouveau repository utilisateur
func NewPostgresRepository(db *sql.DB) Repository {
	return &PostgresRepository{db: db}
}

// Create ajoute un nouvel utilisateur dans la base de données
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {
	query := `
        INSERT INTO users (email, password, nom, prenom, statut)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `

	err := r.db.QueryRowContext(ctx, query,
		user.Email,
		user.Password,
		user.Nom,
		user.Prenom,
		user.Statut,
	).Scan(&user.ID, &user.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return models.NewError(models.ErrConflict, "Cet email est déjà utilisé")
	}
	if err != nil {
		return fmt.Errorf("insertion utilisateur: %w", err)
	}

	return nil
}

// GetByID récupère un utilisateur par son ID
func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
        SELECT id, email, password, nom, prenom, statut, created_at
        FROM users
        WHERE id = $1
    `

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("utilisateur avec ID %d: %w", id, err)
	}
	return user, nil
}

// GetByEmail récupère un utilisateur par son email
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
        SELECT id, email, password, nom, prenom, statut, created_at
        FROM users
        WHERE email = $1
    `

	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("utilisateur avec email %s: %w", email, err)
	}
	return user, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.Nom,
		&user.Prenom,
		&user.Statut,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

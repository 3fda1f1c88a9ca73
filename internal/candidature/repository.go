package candidature

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/cduffaut/jobtrack/internal/database"
	"github.com/cduffaut/jobtrack/internal/models"
)

var candidatureColumns = []string{
	"c.id", "c.user_id", "c.entreprise_id", "c.poste", "c.type", "c.statut",
	"c.date_envoi", "c.date_relance", "c.cv_url", "c.lettre_url", "c.notes",
	"c.created_at", "c.updated_at",
	"e.id", "e.nom", "e.secteur", "e.site_web", "e.notes",
}

// PostgresRepository implémente Repository avec PostgreSQL
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository crée un nouveau repository de candidatures
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCandidature(row rowScanner) (*models.Candidature, error) {
	c := &models.Candidature{Entreprise: &models.Entreprise{}}
	err := row.Scan(
		&c.ID, &c.UserID, &c.EntrepriseID, &c.Poste, &c.Type, &c.Statut,
		&c.DateEnvoi, &c.DateRelance, &c.CvURL, &c.LettreURL, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt,
		&c.Entreprise.ID, &c.Entreprise.Nom, &c.Entreprise.Secteur, &c.Entreprise.SiteWeb, &c.Entreprise.Notes,
	)
	if err != nil {
		return nil, err
	}
	c.Interactions = []models.Interaction{}
	return c, nil
}

func selectCandidatures() sq.SelectBuilder {
	return database.Builder().
		Select(candidatureColumns...).
		From("candidatures c").
		Join("entreprises e ON e.id = c.entreprise_id")
}

// applyFilter pose toujours le filtre propriétaire
func applyFilter(q sq.SelectBuilder, userID int, f Filter) sq.SelectBuilder {
	q = q.Where(sq.Eq{"c.user_id": userID})
	if f.Statut != nil {
		q = q.Where(sq.Eq{"c.statut": string(*f.Statut)})
	}
	if f.Type != nil {
		q = q.Where(sq.Eq{"c.type": string(*f.Type)})
	}
	if f.DateFrom != nil {
		q = q.Where(sq.GtOrEq{"c.date_envoi": *f.DateFrom})
	}
	if f.DateTo != nil {
		q = q.Where(sq.LtOrEq{"c.date_envoi": *f.DateTo})
	}
	return q
}

// Create ajoute une candidature
func (r *PostgresRepository) Create(ctx context.Context, c *models.Candidature) error {
	query, args, err := database.Builder().
		Insert("candidatures").
		Columns("user_id", "entreprise_id", "poste", "type", "statut", "date_envoi",
			"date_relance", "cv_url", "lettre_url", "notes").
		Values(c.UserID, c.EntrepriseID, c.Poste, string(c.Type), string(c.Statut), c.DateEnvoi,
			c.DateRelance, c.CvURL, c.LettreURL, c.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("construction de la requête: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("insertion de la candidature: %w", err)
	}
	return nil
}

// GetOwned renvoie la candidature si elle appartient à userID
func (r *PostgresRepository) GetOwned(ctx context.Context, userID, id int) (*models.Candidature, error) {
	query, args, err := selectCandidatures().
		Where(sq.Eq{"c.id": id, "c.user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("construction de la requête: %w", err)
	}

	c, err := scanCandidature(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture de la candidature %d: %w", id, err)
	}
	return c, nil
}

// List renvoie une page de candidatures, les plus récentes d'abord
func (r *PostgresRepository) List(ctx context.Context, userID int, f Filter, limit, offset int) ([]models.Candidature, error) {
	q := applyFilter(selectCandidatures(), userID, f).
		OrderBy("c.date_envoi DESC", "c.id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	return r.query(ctx, q)
}

// ListAll renvoie toutes les candidatures filtrées, sans pagination
func (r *PostgresRepository) ListAll(ctx context.Context, userID int, f Filter) ([]models.Candidature, error) {
	q := applyFilter(selectCandidatures(), userID, f).
		OrderBy("c.date_envoi DESC", "c.id DESC")
	return r.query(ctx, q)
}

func (r *PostgresRepository) query(ctx context.Context, q sq.SelectBuilder) ([]models.Candidature, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("construction de la requête: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("liste des candidatures: %w", err)
	}
	defer rows.Close()

	list := []models.Candidature{}
	for rows.Next() {
		c, err := scanCandidature(rows)
		if err != nil {
			return nil, fmt.Errorf("lecture d'une candidature: %w", err)
		}
		list = append(list, *c)
	}
	return list, rows.Err()
}

// Count compte les candidatures correspondant au filtre
func (r *PostgresRepository) Count(ctx context.Context, userID int, f Filter) (int, error) {
	q := applyFilter(database.Builder().Select("COUNT(*)").From("candidatures c"), userID, f)
	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("construction de la requête: %w", err)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("comptage des candidatures: %w", err)
	}
	return total, nil
}

// Update applique les champs renseignés de ch
func (r *PostgresRepository) Update(ctx context.Context, userID, id int, ch Changes) error {
	q := database.Builder().
		Update("candidatures").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "user_id": userID})

	if ch.Statut != nil {
		q = q.Set("statut", string(*ch.Statut))
	}
	if ch.Type != nil {
		q = q.Set("type", string(*ch.Type))
	}
	if ch.Poste != nil {
		q = q.Set("poste", *ch.Poste)
	}
	if ch.DateRelance != nil {
		q = q.Set("date_relance", *ch.DateRelance)
	}
	if ch.Notes != nil {
		q = q.Set("notes", *ch.Notes)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("construction de la requête: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("mise à jour de la candidature %d: %w", id, err)
	}
	return expectAffected(res)
}

// Delete supprime la candidature; ses interactions doivent déjà être supprimées
func (r *PostgresRepository) Delete(ctx context.Context, userID, id int) error {
	query, args, err := database.Builder().
		Delete("candidatures").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("construction de la requête: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("suppression de la candidature %d: %w", id, err)
	}
	return expectAffected(res)
}

// CreateInteraction ajoute une interaction
func (r *PostgresRepository) CreateInteraction(ctx context.Context, i *models.Interaction) error {
	query, args, err := database.Builder().
		Insert("interactions").
		Columns("candidature_id", "type", "date", "description").
		Values(i.CandidatureID, string(i.Type), i.Date, i.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("construction de la requête: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&i.ID); err != nil {
		return fmt.Errorf("insertion de l'interaction: %w", err)
	}
	return nil
}

// DeleteInteractions supprime toutes les interactions d'une candidature
func (r *PostgresRepository) DeleteInteractions(ctx context.Context, candidatureID int) error {
	query, args, err := database.Builder().
		Delete("interactions").
		Where(sq.Eq{"candidature_id": candidatureID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("construction de la requête: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("suppression des interactions de %d: %w", candidatureID, err)
	}
	return nil
}

// InteractionsFor charge les interactions des candidatures, les plus récentes d'abord
func (r *PostgresRepository) InteractionsFor(ctx context.Context, candidatureIDs []int) (map[int][]models.Interaction, error) {
	result := make(map[int][]models.Interaction, len(candidatureIDs))
	if len(candidatureIDs) == 0 {
		return result, nil
	}

	query, args, err := database.Builder().
		Select("id", "candidature_id", "type", "date", "description").
		From("interactions").
		Where(sq.Eq{"candidature_id": candidatureIDs}).
		OrderBy("date DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("construction de la requête: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("liste des interactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var i models.Interaction
		if err := rows.Scan(&i.ID, &i.CandidatureID, &i.Type, &i.Date, &i.Description); err != nil {
			return nil, fmt.Errorf("lecture d'une interaction: %w", err)
		}
		result[i.CandidatureID] = append(result[i.CandidatureID], i)
	}
	return result, rows.Err()
}

// CountByStatut compte les candidatures par statut
func (r *PostgresRepository) CountByStatut(ctx context.Context, userID int) (map[string]int, error) {
	return r.countBy(ctx, userID, "statut")
}

// CountByType compte les candidatures par type de contrat
func (r *PostgresRepository) CountByType(ctx context.Context, userID int) (map[string]int, error) {
	return r.countBy(ctx, userID, "type")
}

// column vient toujours d'une constante
func (r *PostgresRepository) countBy(ctx context.Context, userID int, column string) (map[string]int, error) {
	query, args, err := database.Builder().
		Select(column, "COUNT(*)").
		From("candidatures").
		Where(sq.Eq{"user_id": userID}).
		GroupBy(column).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("construction de la requête: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("statistiques par %s: %w", column, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("lecture des statistiques: %w", err)
		}
		counts[key] = n
	}
	return counts, rows.Err()
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("lignes affectées: %w", err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

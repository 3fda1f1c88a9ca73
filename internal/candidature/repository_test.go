package candidature

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/cduffaut/jobtrack/internal/database/dbtest"
	"github.com/cduffaut/jobtrack/internal/entreprise"
	"github.com/cduffaut/jobtrack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertUser(t *testing.T, db *sql.DB, email string) int {
	t.Helper()
	var id int
	err := db.QueryRow(`INSERT INTO users (email, password, nom, prenom, statut) VALUES ($1, 'h', 'N', 'P', 'etudiant') RETURNING id`, email).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestPostgresRepository_Lifecycle(t *testing.T) {
	db := dbtest.Setup(t)
	repo := NewPostgresRepository(db)
	svc := NewService(repo, entreprise.NewService(entreprise.NewPostgresRepository(db)))
	ctx := context.Background()

	aliceID := insertUser(t, db, "alice@example.com")
	bobID := insertUser(t, db, "bob@example.com")

	c, err := svc.Create(ctx, aliceID, validCreate())
	require.NoError(t, err)
	assert.NotZero(t, c.ID)

	_, err = svc.AddInteraction(ctx, aliceID, c.ID, InteractionRequest{Type: "email", Date: "2024-03-16"})
	require.NoError(t, err)
	_, err = svc.AddInteraction(ctx, aliceID, c.ID, InteractionRequest{Type: "entretien", Date: "2024-03-20T10:00:00Z"})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, aliceID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Google France", got.Entreprise.Nom)
	require.Len(t, got.Interactions, 2)
	assert.Equal(t, models.InteractionEntretien, got.Interactions[0].Type)

	_, err = repo.GetOwned(ctx, bobID, c.ID)
	assert.True(t, errors.Is(err, models.ErrNotFound))

	updated, err := svc.Update(ctx, aliceID, c.ID, UpdateRequest{Statut: strPtr("entretien")})
	require.NoError(t, err)
	assert.Equal(t, models.StatutEntretien, updated.Statut)
	assert.Equal(t, c.Poste, updated.Poste)
	assert.True(t, !updated.UpdatedAt.Before(c.UpdatedAt))

	stats, err := svc.StatsSummary(ctx, aliceID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalCandidatures)
	assert.Equal(t, map[string]int{"entretien": 1}, stats.ByStatut)

	require.NoError(t, svc.Delete(ctx, aliceID, c.ID))

	var remaining int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM interactions WHERE candidature_id = $1`, c.ID).Scan(&remaining))
	assert.Zero(t, remaining)
}

func TestPostgresRepository_ListFiltersAndPagination(t *testing.T) {
	db := dbtest.Setup(t)
	repo := NewPostgresRepository(db)
	svc := NewService(repo, entreprise.NewService(entreprise.NewPostgresRepository(db)))
	ctx := context.Background()

	userID := insertUser(t, db, "carla@example.com")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		req := validCreate()
		req.DateEnvoi = base.AddDate(0, 0, i).Format("2006-01-02")
		if i%3 == 0 {
			req.Statut = "refus"
		}
		_, err := svc.Create(ctx, userID, req)
		require.NoError(t, err)
	}

	page2, err := svc.List(ctx, userID, Filter{}, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 15, page2.Total)
	assert.Len(t, page2.Candidatures, 5)

	refus := models.StatutRefus
	filtered, err := svc.List(ctx, userID, Filter{Statut: &refus}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 5, filtered.Total)

	from := base.AddDate(0, 0, 10)
	to := base.AddDate(0, 0, 12)
	ranged, err := repo.ListAll(ctx, userID, Filter{DateFrom: &from, DateTo: &to})
	require.NoError(t, err)
	assert.Len(t, ranged, 3)
}

package entreprise

import (
	"context"
	"errors"
	"testing"

	"github.com/cduffaut/jobtrack/internal/database/dbtest"
	"github.com/cduffaut/jobtrack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepository_ListForUser(t *testing.T) {
	db := dbtest.Setup(t)
	repo := NewPostgresRepository(db)
	ctx := context.Background()

	var alice, bob int
	require.NoError(t, db.QueryRow(`INSERT INTO users (email, password, nom, prenom, statut) VALUES ('alice@example.com','h','A','Alice','etudiant') RETURNING id`).Scan(&alice))
	require.NoError(t, db.QueryRow(`INSERT INTO users (email, password, nom, prenom, statut) VALUES ('bob@example.com','h','B','Bob','chomeur') RETURNING id`).Scan(&bob))

	secteur := "Technologie"
	google := &models.Entreprise{Nom: "Google France", Secteur: &secteur}
	airbus := &models.Entreprise{Nom: "Airbus"}
	require.NoError(t, repo.Create(ctx, google))
	require.NoError(t, repo.Create(ctx, airbus))

	found, err := repo.FindByName(ctx, "Google France")
	require.NoError(t, err)
	assert.Equal(t, google.ID, found.ID)
	assert.Equal(t, "Technologie", *found.Secteur)

	_, err = repo.FindByName(ctx, "Inconnue")
	assert.True(t, errors.Is(err, models.ErrNotFound))

	insert := `INSERT INTO candidatures (user_id, entreprise_id, poste, type, statut, date_envoi) VALUES ($1, $2, 'Dev', 'cdi', 'envoye', NOW())`
	_, err = db.Exec(insert, alice, google.ID)
	require.NoError(t, err)
	_, err = db.Exec(insert, alice, google.ID)
	require.NoError(t, err)
	_, err = db.Exec(insert, bob, airbus.ID)
	require.NoError(t, err)

	list, err := repo.ListForUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Google France", list[0].Nom)
	assert.Equal(t, 2, list[0].Candidatures)
}

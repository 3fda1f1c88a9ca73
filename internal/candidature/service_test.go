package candidature

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cduffaut/jobtrack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = 1
	bob   = 2
)

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, repo), repo
}

func strPtr(s string) *string { return &s }

func validCreate() CreateRequest {
	return CreateRequest{
		EntrepriseNom:     "Google France",
		EntrepriseSecteur: strPtr("Technologie"),
		Poste:             "Développeur Go",
		Type:              "cdi",
		DateEnvoi:         "2024-03-15",
		Notes:             strPtr("Candidature spontanée"),
	}
}

func mustCreate(t *testing.T, svc *Service, userID int, mutate func(*CreateRequest)) *models.Candidature {
	t.Helper()
	req := validCreate()
	if mutate != nil {
		mutate(&req)
	}
	c, err := svc.Create(context.Background(), userID, req)
	require.NoError(t, err)
	return c
}

func TestCreate_DefaultsAndCompany(t *testing.T) {
	svc, _ := newTestService()

	c := mustCreate(t, svc, alice, nil)

	assert.Equal(t, models.StatutEnvoye, c.Statut)
	assert.Equal(t, models.TypeCDI, c.Type)
	assert.Equal(t, alice, c.UserID)
	require.NotNil(t, c.Entreprise)
	assert.Equal(t, "Google France", c.Entreprise.Nom)
	assert.Equal(t, c.Entreprise.ID, c.EntrepriseID)
	assert.NotNil(t, c.Interactions)
	assert.Empty(t, c.Interactions)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), c.DateEnvoi)
}

func TestCreate_ReusesCompanyByName(t *testing.T) {
	svc, repo := newTestService()

	first := mustCreate(t, svc, alice, nil)
	second := mustCreate(t, svc, bob, nil)

	assert.Equal(t, first.EntrepriseID, second.EntrepriseID)
	assert.Len(t, repo.entreprises, 1)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateRequest)
		field  string
	}{
		{"entreprise manquante", func(r *CreateRequest) { r.EntrepriseNom = " " }, "entrepriseNom"},
		{"poste manquant", func(r *CreateRequest) { r.Poste = "" }, "poste"},
		{"type manquant", func(r *CreateRequest) { r.Type = "" }, "type"},
		{"type invalide", func(r *CreateRequest) { r.Type = "freelance" }, "type"},
		{"statut invalide", func(r *CreateRequest) { r.Statut = "oublie" }, "statut"},
		{"date manquante", func(r *CreateRequest) { r.DateEnvoi = "" }, "dateEnvoi"},
		{"date invalide", func(r *CreateRequest) { r.DateEnvoi = "15/03/2024" }, "dateEnvoi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService()
			req := validCreate()
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), alice, req)

			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrValidation))
			assert.Contains(t, err.Error(), tt.field)
			assert.Empty(t, repo.candidatures)
		})
	}
}

func TestCreate_AcceptsEveryEnumValue(t *testing.T) {
	svc, _ := newTestService()

	for _, typ := range models.CandidatureTypes {
		for _, st := range models.Statuts {
			c := mustCreate(t, svc, alice, func(r *CreateRequest) {
				r.Type = string(typ)
				r.Statut = string(st)
			})
			assert.Equal(t, typ, c.Type)
			assert.Equal(t, st, c.Statut)
		}
	}
}

func TestList_Pagination(t *testing.T) {
	svc, _ := newTestService()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		d := base.AddDate(0, 0, i).Format("2006-01-02")
		mustCreate(t, svc, alice, func(r *CreateRequest) { r.DateEnvoi = d })
	}

	first, err := svc.List(context.Background(), alice, Filter{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 15, first.Total)
	assert.Len(t, first.Candidatures, 10)
	assert.Equal(t, base.AddDate(0, 0, 14), first.Candidatures[0].DateEnvoi)

	second, err := svc.List(context.Background(), alice, Filter{}, 2, 10)
	require.NoError(t, err)
	assert.Len(t, second.Candidatures, 5)
	assert.Equal(t, 2, second.Page)
	assert.Equal(t, base, second.Candidatures[4].DateEnvoi)
}

func TestList_DefaultsAndCap(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.List(context.Background(), alice, Filter{}, 0, -3)
	require.NoError(t, err)
	assert.Equal(t, DefaultPage, res.Page)
	assert.Equal(t, DefaultLimit, res.Limit)
	assert.NotNil(t, res.Candidatures)

	res, err = svc.List(context.Background(), alice, Filter{}, 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, res.Limit)
}

func TestList_FiltersAndOwnership(t *testing.T) {
	svc, _ := newTestService()
	mustCreate(t, svc, alice, func(r *CreateRequest) { r.Statut = "entretien" })
	mustCreate(t, svc, alice, func(r *CreateRequest) { r.Type = "stage" })
	mustCreate(t, svc, bob, func(r *CreateRequest) { r.Statut = "entretien" })

	f, err := ParseFilter("entretien", "")
	require.NoError(t, err)

	res, err := svc.List(context.Background(), alice, f, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, models.StatutEntretien, res.Candidatures[0].Statut)

	f, err = ParseFilter("", "stage")
	require.NoError(t, err)
	res, err = svc.List(context.Background(), alice, f, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)

	_, err = ParseFilter("inconnu", "")
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestCrossUserAccess_NotFound(t *testing.T) {
	svc, repo := newTestService()
	c := mustCreate(t, svc, alice, nil)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, bob, c.ID)
	assert.True(t, errors.Is(err, models.ErrNotFound))

	_, err = svc.Update(ctx, bob, c.ID, UpdateRequest{Statut: strPtr("refus")})
	assert.True(t, errors.Is(err, models.ErrNotFound))

	err = svc.Delete(ctx, bob, c.ID)
	assert.True(t, errors.Is(err, models.ErrNotFound))

	_, err = svc.AddInteraction(ctx, bob, c.ID, InteractionRequest{Type: "email", Date: "2024-03-20"})
	assert.True(t, errors.Is(err, models.ErrNotFound))

	still, err := svc.GetByID(ctx, alice, c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatutEnvoye, still.Statut)
	assert.Equal(t, 0, repo.interactionCount(c.ID))
}

func TestGetByID_Missing(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetByID(context.Background(), alice, 999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
	assert.Equal(t, "Candidature non trouvée", err.Error())
}

func TestUpdate_PartialKeepsOtherFields(t *testing.T) {
	svc, _ := newTestService()
	c := mustCreate(t, svc, alice, nil)

	updated, err := svc.Update(context.Background(), alice, c.ID, UpdateRequest{Statut: strPtr("entretien")})
	require.NoError(t, err)

	assert.Equal(t, models.StatutEntretien, updated.Statut)
	assert.Equal(t, c.Poste, updated.Poste)
	assert.Equal(t, c.Type, updated.Type)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "Candidature spontanée", *updated.Notes)
	assert.Nil(t, updated.DateRelance)
	assert.Equal(t, "Google France", updated.Entreprise.Nom)
}

func TestUpdate_AllFields(t *testing.T) {
	svc, _ := newTestService()
	c := mustCreate(t, svc, alice, nil)

	updated, err := svc.Update(context.Background(), alice, c.ID, UpdateRequest{
		Statut:      strPtr("accepte"),
		Type:        strPtr("alternance"),
		Poste:       strPtr("Lead dev"),
		DateRelance: strPtr("2024-04-01T10:00:00Z"),
		Notes:       strPtr(""),
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatutAccepte, updated.Statut)
	assert.Equal(t, models.TypeAlternance, updated.Type)
	assert.Equal(t, "Lead dev", updated.Poste)
	require.NotNil(t, updated.DateRelance)
	assert.Equal(t, time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC), *updated.DateRelance)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "", *updated.Notes)
}

func TestUpdate_InvalidValues(t *testing.T) {
	svc, _ := newTestService()
	c := mustCreate(t, svc, alice, nil)

	for _, req := range []UpdateRequest{
		{Statut: strPtr("perdu")},
		{Type: strPtr("interim")},
		{Poste: strPtr("  ")},
		{DateRelance: strPtr("demain")},
	} {
		_, err := svc.Update(context.Background(), alice, c.ID, req)
		assert.True(t, errors.Is(err, models.ErrValidation), fmt.Sprintf("%+v", req))
	}

	unchanged, err := svc.GetByID(context.Background(), alice, c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatutEnvoye, unchanged.Statut)
}

func TestDelete_RemovesInteractionsFirst(t *testing.T) {
	svc, repo := newTestService()
	c := mustCreate(t, svc, alice, nil)
	ctx := context.Background()

	for _, typ := range []string{"email", "appel", "entretien"} {
		_, err := svc.AddInteraction(ctx, alice, c.ID, InteractionRequest{Type: typ, Date: "2024-03-20"})
		require.NoError(t, err)
	}
	require.Equal(t, 3, repo.interactionCount(c.ID))

	require.NoError(t, svc.Delete(ctx, alice, c.ID))

	assert.Equal(t, 0, repo.interactionCount(c.ID))
	assert.Equal(t, []string{"DeleteInteractions", "Delete"}, repo.calls)
	_, err := svc.GetByID(ctx, alice, c.ID)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestAddInteraction(t *testing.T) {
	svc, _ := newTestService()
	c := mustCreate(t, svc, alice, nil)
	ctx := context.Background()

	older, err := svc.AddInteraction(ctx, alice, c.ID, InteractionRequest{Type: "email", Date: "2024-03-16"})
	require.NoError(t, err)
	newer, err := svc.AddInteraction(ctx, alice, c.ID, InteractionRequest{
		Type:        "entretien",
		Date:        "2024-03-25T14:30",
		Description: strPtr("Entretien RH"),
	})
	require.NoError(t, err)
	assert.Equal(t, c.ID, newer.CandidatureID)

	got, err := svc.GetByID(ctx, alice, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Interactions, 2)
	assert.Equal(t, newer.ID, got.Interactions[0].ID)
	assert.Equal(t, older.ID, got.Interactions[1].ID)
}

func TestAddInteraction_Validation(t *testing.T) {
	svc, _ := newTestService()
	c := mustCreate(t, svc, alice, nil)

	for _, req := range []InteractionRequest{
		{Type: "", Date: "2024-03-16"},
		{Type: "email", Date: ""},
		{Type: "sms", Date: "2024-03-16"},
		{Type: "email", Date: "pas une date"},
	} {
		_, err := svc.AddInteraction(context.Background(), alice, c.ID, req)
		assert.True(t, errors.Is(err, models.ErrValidation), fmt.Sprintf("%+v", req))
	}
}

func TestStatsSummary(t *testing.T) {
	svc, _ := newTestService()
	for i := 0; i < 3; i++ {
		mustCreate(t, svc, alice, nil)
	}
	for i := 0; i < 2; i++ {
		mustCreate(t, svc, alice, func(r *CreateRequest) { r.Statut = "entretien"; r.Type = "stage" })
	}
	mustCreate(t, svc, bob, func(r *CreateRequest) { r.Statut = "refus" })

	stats, err := svc.StatsSummary(context.Background(), alice)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.TotalCandidatures)
	assert.Equal(t, map[string]int{"envoye": 3, "entretien": 2}, stats.ByStatut)
	assert.Equal(t, map[string]int{"cdi": 3, "stage": 2}, stats.ByType)
}

func TestListAll_WithInteractions(t *testing.T) {
	svc, _ := newTestService()
	c := mustCreate(t, svc, alice, nil)
	_, err := svc.AddInteraction(context.Background(), alice, c.ID, InteractionRequest{Type: "appel", Date: "2024-03-18"})
	require.NoError(t, err)

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	all, err := svc.ListAll(context.Background(), alice, Filter{DateFrom: &from})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Len(t, all[0].Interactions, 1)

	later := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	all, err = svc.ListAll(context.Background(), alice, Filter{DateFrom: &later})
	require.NoError(t, err)
	assert.Empty(t, all)
}

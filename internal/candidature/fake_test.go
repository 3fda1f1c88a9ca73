package candidature

import (
	"context"
	"sort"
	"sync"

	"github.com/cduffaut/jobtrack/internal/models"
)

// fakeRepo reproduit en mémoire la sémantique du repository PostgreSQL
type fakeRepo struct {
	mu           sync.Mutex
	candidatures map[int]*models.Candidature
	interactions map[int]*models.Interaction
	entreprises  map[int]*models.Entreprise
	nextID       int
	calls        []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		candidatures: make(map[int]*models.Candidature),
		interactions: make(map[int]*models.Interaction),
		entreprises:  make(map[int]*models.Entreprise),
		nextID:       1,
	}
}

func (f *fakeRepo) id() int {
	id := f.nextID
	f.nextID++
	return id
}

// FindOrCreate permet d'utiliser le fake comme EntrepriseResolver
func (f *fakeRepo) FindOrCreate(_ context.Context, nom string, secteur, siteWeb *string) (*models.Entreprise, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entreprises {
		if e.Nom == nom {
			return e, nil
		}
	}
	e := &models.Entreprise{ID: f.id(), Nom: nom, Secteur: secteur, SiteWeb: siteWeb}
	f.entreprises[e.ID] = e
	return e, nil
}

func (f *fakeRepo) Create(_ context.Context, c *models.Candidature) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = f.id()
	cp := *c
	f.candidatures[c.ID] = &cp
	return nil
}

func (f *fakeRepo) withEntreprise(c models.Candidature) models.Candidature {
	c.Entreprise = f.entreprises[c.EntrepriseID]
	c.Interactions = []models.Interaction{}
	return c
}

func (f *fakeRepo) GetOwned(_ context.Context, userID, id int) (*models.Candidature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.candidatures[id]
	if !ok || c.UserID != userID {
		return nil, models.ErrNotFound
	}
	out := f.withEntreprise(*c)
	return &out, nil
}

func (f *fakeRepo) matching(userID int, flt Filter) []models.Candidature {
	var out []models.Candidature
	for _, c := range f.candidatures {
		if c.UserID != userID {
			continue
		}
		if flt.Statut != nil && c.Statut != *flt.Statut {
			continue
		}
		if flt.Type != nil && c.Type != *flt.Type {
			continue
		}
		if flt.DateFrom != nil && c.DateEnvoi.Before(*flt.DateFrom) {
			continue
		}
		if flt.DateTo != nil && c.DateEnvoi.After(*flt.DateTo) {
			continue
		}
		out = append(out, f.withEntreprise(*c))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DateEnvoi.Equal(out[j].DateEnvoi) {
			return out[i].ID > out[j].ID
		}
		return out[i].DateEnvoi.After(out[j].DateEnvoi)
	})
	return out
}

func (f *fakeRepo) List(_ context.Context, userID int, flt Filter, limit, offset int) ([]models.Candidature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.matching(userID, flt)
	if offset >= len(all) {
		return []models.Candidature{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeRepo) Count(_ context.Context, userID int, flt Filter) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.matching(userID, flt)), nil
}

func (f *fakeRepo) ListAll(_ context.Context, userID int, flt Filter) ([]models.Candidature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.matching(userID, flt)
	if out == nil {
		out = []models.Candidature{}
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, userID, id int, ch Changes) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.candidatures[id]
	if !ok || c.UserID != userID {
		return models.ErrNotFound
	}
	if ch.Statut != nil {
		c.Statut = *ch.Statut
	}
	if ch.Type != nil {
		c.Type = *ch.Type
	}
	if ch.Poste != nil {
		c.Poste = *ch.Poste
	}
	if ch.DateRelance != nil {
		d := *ch.DateRelance
		c.DateRelance = &d
	}
	if ch.Notes != nil {
		n := *ch.Notes
		c.Notes = &n
	}
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, userID, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "Delete")
	c, ok := f.candidatures[id]
	if !ok || c.UserID != userID {
		return models.ErrNotFound
	}
	for _, i := range f.interactions {
		if i.CandidatureID == id {
			// la clé étrangère bloquerait la suppression
			return models.ErrConflict
		}
	}
	delete(f.candidatures, id)
	return nil
}

func (f *fakeRepo) CreateInteraction(_ context.Context, i *models.Interaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i.ID = f.id()
	cp := *i
	f.interactions[i.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteInteractions(_ context.Context, candidatureID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "DeleteInteractions")
	for id, i := range f.interactions {
		if i.CandidatureID == candidatureID {
			delete(f.interactions, id)
		}
	}
	return nil
}

func (f *fakeRepo) InteractionsFor(_ context.Context, ids []int) (map[int][]models.Interaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := make(map[int]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := make(map[int][]models.Interaction)
	for _, i := range f.interactions {
		if wanted[i.CandidatureID] {
			out[i.CandidatureID] = append(out[i.CandidatureID], *i)
		}
	}
	for id := range out {
		list := out[id]
		sort.Slice(list, func(a, b int) bool { return list[a].Date.After(list[b].Date) })
	}
	return out, nil
}

func (f *fakeRepo) countBy(userID int, key func(*models.Candidature) string) map[string]int {
	out := make(map[string]int)
	for _, c := range f.candidatures {
		if c.UserID == userID {
			out[key(c)]++
		}
	}
	return out
}

func (f *fakeRepo) CountByStatut(_ context.Context, userID int) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.countBy(userID, func(c *models.Candidature) string { return string(c.Statut) }), nil
}

func (f *fakeRepo) CountByType(_ context.Context, userID int) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.countBy(userID, func(c *models.Candidature) string { return string(c.Type) }), nil
}

func (f *fakeRepo) interactionCount(candidatureID int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, i := range f.interactions {
		if i.CandidatureID == candidatureID {
			n++
		}
	}
	return n
}

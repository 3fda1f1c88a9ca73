package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cduffaut/jobtrack/internal/auth"
	"github.com/cduffaut/jobtrack/internal/candidature"
	"github.com/cduffaut/jobtrack/internal/models"
	"github.com/cduffaut/jobtrack/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sample() models.Candidature {
	relance := time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC)
	return models.Candidature{
		ID:          1,
		Poste:       "Développeur, Go",
		Type:        models.TypeCDI,
		Statut:      models.StatutEntretien,
		DateEnvoi:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		DateRelance: &relance,
		Notes:       strPtr(`Le recruteur a dit "rappelez-moi"` + "\nsur deux lignes"),
		Entreprise: &models.Entreprise{
			Nom:     "Google France",
			Secteur: strPtr("Technologie"),
			SiteWeb: strPtr("https://google.fr"),
		},
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []models.Candidature{sample()}))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\ufeff"))
	assert.Contains(t, out, `"Le recruteur a dit ""rappelez-moi""`)

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\ufeff"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, headers, records[0])
	assert.Equal(t, []string{
		"15/03/2024",
		"Google France",
		"Technologie",
		"Développeur, Go",
		"cdi",
		"entretien",
		"https://google.fr",
		`Le recruteur a dit "rappelez-moi"` + "\nsur deux lignes",
		"02/04/2024",
	}, records[1])
}

func TestWriteCSV_EveryFieldQuoted(t *testing.T) {
	c := sample()
	c.Notes = nil
	c.DateRelance = nil
	c.Entreprise.Secteur = nil

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []models.Candidature{c}))

	lines := strings.Split(strings.TrimPrefix(buf.String(), "\ufeff"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"15/03/2024","Google France","","Développeur, Go","cdi","entretien","https://google.fr","",""`, lines[1])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "\ufeff"+`"Date d'envoi","Entreprise","Secteur","Poste","Type","Statut","Site Web","Notes","Date de relance"`, buf.String())
}

func TestParseQuery(t *testing.T) {
	f, err := ParseQuery(Query{Statut: "refus", DateDebut: "2024-01-01", DateFin: "2024-01-31"})
	require.NoError(t, err)

	require.NotNil(t, f.Statut)
	assert.Equal(t, models.StatutRefus, *f.Statut)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *f.DateFrom)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC), *f.DateTo)

	_, err = ParseQuery(Query{DateDebut: "hier"})
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = ParseQuery(Query{Type: "freelance"})
	assert.True(t, errors.Is(err, models.ErrValidation))
}

// fakeCandidatures enregistre les créations et renvoie une liste fixe
type fakeCandidatures struct {
	items    []models.Candidature
	filter   candidature.Filter
	created  []candidature.CreateRequest
	failWith error
}

func (f *fakeCandidatures) ListAll(_ context.Context, _ int, flt candidature.Filter) ([]models.Candidature, error) {
	f.filter = flt
	return f.items, nil
}

func (f *fakeCandidatures) Create(_ context.Context, _ int, req candidature.CreateRequest) (*models.Candidature, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	if _, err := validation.ValidateCandidatureType(req.Type); err != nil {
		return nil, err
	}
	f.created = append(f.created, req)
	return &models.Candidature{ID: len(f.created)}, nil
}

func TestImportCSV_ReportsSkippedRows(t *testing.T) {
	fake := &fakeCandidatures{}
	svc := NewService(fake)

	input := "\ufeffPoste,Entreprise,Type,Statut,Date Envoi,Notes\n" +
		"Dev Go,Airbus,cdi,envoye,2024-03-01,\"avec, virgule\"\n" +
		",Thales,cdd,envoye,2024-03-02,\n" +
		"Data,Capgemini,freelance,envoye,2024-03-03,\n" +
		"Ops,Orange,stage,,15/03/2024,\n" +
		"QA,SNCF,cdi,envoye,pas-une-date,\n"

	res, err := svc.ImportCSV(context.Background(), 1, strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 3, res.Skipped)
	require.Len(t, res.Errors, 3)
	assert.Equal(t, 3, res.Errors[0].Line)
	assert.Contains(t, res.Errors[0].Reason, "poste")
	assert.Equal(t, 6, res.Errors[1].Line)
	assert.Contains(t, res.Errors[1].Reason, "date")
	assert.Equal(t, 4, res.Errors[2].Line)
	assert.Contains(t, res.Errors[2].Reason, "type")

	require.Len(t, fake.created, 2)
	assert.Equal(t, "avec, virgule", *fake.created[0].Notes)
	assert.Equal(t, "2024-03-15", fake.created[1].DateEnvoi)
}

func TestImportCSV_ExportedFileIsImportable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []models.Candidature{sample()}))

	fake := &fakeCandidatures{}
	res, err := NewService(fake).ImportCSV(context.Background(), 1, &buf)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Imported)
	require.Len(t, fake.created, 1)
	got := fake.created[0]
	assert.Equal(t, "Google France", got.EntrepriseNom)
	assert.Equal(t, "Technologie", *got.EntrepriseSecteur)
	assert.Equal(t, "2024-03-15", got.DateEnvoi)
	assert.Equal(t, "entretien", got.Statut)
}

func TestParseImport_QuotedHeaderAfterBOM(t *testing.T) {
	input := "\ufeff\"Date d'envoi\",\"Entreprise\",\"Poste\",\"Type\"\n\"15/03/2024\",\"Airbus\",\"Dev\",\"cdi\""

	result := &ImportResult{}
	rows, err := parseImport(strings.NewReader(input), result)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-03-15", rows[0].req.DateEnvoi)
	assert.Equal(t, "Airbus", rows[0].req.EntrepriseNom)
	assert.Zero(t, result.Skipped)
}

func TestExportHandler_LogsFailedWrite(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	h := NewHandlers(NewService(&fakeCandidatures{items: []models.Candidature{sample()}}))
	req := httptest.NewRequest(http.MethodGet, "/api/export/candidatures/csv", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), 1))
	h.ExportHandler(failingWriter{httptest.NewRecorder()}, req)

	assert.Contains(t, logs.String(), "envoi du fichier CSV interrompu")
}

// failingWriter simule un client déconnecté
type failingWriter struct {
	*httptest.ResponseRecorder
}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("connexion fermée")
}

func TestImportCSV_MissingColumn(t *testing.T) {
	_, err := NewService(&fakeCandidatures{}).ImportCSV(context.Background(), 1, strings.NewReader("poste,type\nDev,cdi\n"))
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = NewService(&fakeCandidatures{}).ImportCSV(context.Background(), 1, strings.NewReader(""))
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestImportCSV_StorageErrorAborts(t *testing.T) {
	fake := &fakeCandidatures{failWith: errors.New("base indisponible")}
	input := "poste,entreprise,type,dateenvoi\nDev,Airbus,cdi,2024-03-01\n"

	_, err := NewService(fake).ImportCSV(context.Background(), 1, strings.NewReader(input))
	require.Error(t, err)
	assert.False(t, errors.Is(err, models.ErrValidation))
}

func TestExportHandler_Headers(t *testing.T) {
	fake := &fakeCandidatures{items: []models.Candidature{sample()}}
	h := NewHandlers(NewService(fake))

	req := httptest.NewRequest(http.MethodGet, "/api/export/candidatures/csv/filtered?statut=entretien&dateFin=2024-12-31", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), 1))
	rec := httptest.NewRecorder()
	h.ExportFilteredHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Regexp(t, `^attachment; filename="candidatures_filtrees_\d+\.csv"$`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\ufeff"))
	require.NotNil(t, fake.filter.Statut)
	assert.Equal(t, models.StatutEntretien, *fake.filter.Statut)

	req = httptest.NewRequest(http.MethodGet, "/api/export/candidatures/csv", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), 1))
	rec = httptest.NewRecorder()
	h.ExportHandler(rec, req)
	assert.Regexp(t, `^attachment; filename="candidatures_\d+\.csv"$`, rec.Header().Get("Content-Disposition"))
}

func TestExportFilteredHandler_InvalidDate(t *testing.T) {
	h := NewHandlers(NewService(&fakeCandidatures{}))

	req := httptest.NewRequest(http.MethodGet, "/api/export/candidatures/csv/filtered?dateDebut=31-12-2024", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), 1))
	rec := httptest.NewRecorder()
	h.ExportFilteredHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportHandler(t *testing.T) {
	fake := &fakeCandidatures{}
	h := NewHandlers(NewService(fake))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "candidatures.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("poste,entreprise,type,dateenvoi\nDev,Airbus,cdi,2024-03-01\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/import/candidatures/csv", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = req.WithContext(auth.WithUserID(req.Context(), 1))
	rec := httptest.NewRecorder()
	h.ImportHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"imported":1,"skipped":0,"errors":[]}`, rec.Body.String())
}

package export

import (
	"io"
	"strings"
	"time"

	"github.com/cduffaut/jobtrack/internal/models"
)

// BOM UTF-8 attendu par les tableurs
const bom = "\ufeff"

// format des dates dans le fichier exporté (jj/mm/aaaa)
const frenchDate = "02/01/2006"

var headers = []string{
	"Date d'envoi",
	"Entreprise",
	"Secteur",
	"Poste",
	"Type",
	"Statut",
	"Site Web",
	"Notes",
	"Date de relance",
}

// WriteCSV écrit les candidatures au format CSV: BOM, en-tête puis une
// ligne par candidature. Chaque champ est entre guillemets.
func WriteCSV(w io.Writer, items []models.Candidature) error {
	var b strings.Builder
	b.WriteString(bom)
	writeRecord(&b, headers)

	for _, c := range items {
		b.WriteByte('\n')
		writeRecord(&b, record(c))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func record(c models.Candidature) []string {
	var nom, secteur, siteWeb string
	if c.Entreprise != nil {
		nom = c.Entreprise.Nom
		secteur = deref(c.Entreprise.Secteur)
		siteWeb = deref(c.Entreprise.SiteWeb)
	}

	return []string{
		formatDate(c.DateEnvoi),
		nom,
		secteur,
		c.Poste,
		string(c.Type),
		string(c.Statut),
		siteWeb,
		deref(c.Notes),
		formatDatePtr(c.DateRelance),
	}
}

// encoding/csv ne quote que si nécessaire, ici tout est quoté
func writeRecord(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
}

func formatDate(t time.Time) string {
	return t.UTC().Format(frenchDate)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

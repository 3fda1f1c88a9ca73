package export

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cduffaut/jobtrack/internal/candidature"
	"github.com/cduffaut/jobtrack/internal/validation"
)

// RowError signale une ligne ignorée et la raison
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportResult résume un import: aucune ligne n'est perdue sans être signalée
type ImportResult struct {
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors"`
}

func (r *ImportResult) skip(line int, reason string) {
	r.Skipped++
	r.Errors = append(r.Errors, RowError{Line: line, Reason: reason})
}

// importRow est une ligne lue, prête à être créée
type importRow struct {
	line int
	req  candidature.CreateRequest
}

// noms de colonnes normalisés acceptés à l'import, y compris ceux de l'export
var columnAliases = map[string]string{
	"poste":         "poste",
	"entreprise":    "entreprise",
	"entreprisenom": "entreprise",
	"type":          "type",
	"statut":        "statut",
	"dateenvoi":     "dateenvoi",
	"datedenvoi":    "dateenvoi",
	"notes":         "notes",
	"secteur":       "secteur",
	"siteweb":       "siteweb",
}

var errNoHeader = validation.New("file", "le fichier CSV est vide ou sans en-tête")

// parseImport lit un CSV avec en-tête. Les lignes illisibles ou incomplètes
// sont reportées dans result, les autres renvoyées.
func parseImport(r io.Reader, result *ImportResult) ([]importRow, error) {
	reader := csv.NewReader(skipBOM(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errNoHeader
	}
	if err != nil {
		return nil, validation.New("file", fmt.Sprintf("en-tête illisible: %v", err))
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		if name, ok := columnAliases[normalizeHeader(h)]; ok {
			if _, seen := columns[name]; !seen {
				columns[name] = i
			}
		}
	}
	for _, required := range []string{"poste", "entreprise", "type", "dateenvoi"} {
		if _, ok := columns[required]; !ok {
			return nil, validation.New("file", fmt.Sprintf("colonne %q manquante", required))
		}
	}

	var rows []importRow
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				result.skip(parseErr.StartLine, "ligne CSV illisible")
				continue
			}
			return nil, fmt.Errorf("lecture du CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if blank(fields) {
			continue
		}

		get := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(fields) {
				return ""
			}
			return strings.TrimSpace(fields[i])
		}

		row := importRow{line: line, req: candidature.CreateRequest{
			EntrepriseNom:     get("entreprise"),
			EntrepriseSecteur: optional(get("secteur")),
			EntrepriseSiteWeb: optional(get("siteweb")),
			Poste:             get("poste"),
			Type:              strings.ToLower(get("type")),
			Statut:            strings.ToLower(get("statut")),
			Notes:             optional(get("notes")),
		}}

		var missing []string
		for _, name := range []string{"poste", "entreprise", "type", "dateenvoi"} {
			if get(name) == "" {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			result.skip(line, "champs manquants: "+strings.Join(missing, ", "))
			continue
		}

		dateEnvoi, err := normalizeDate(get("dateenvoi"))
		if err != nil {
			result.skip(line, "date d'envoi invalide")
			continue
		}
		row.req.DateEnvoi = dateEnvoi

		rows = append(rows, row)
	}

	return rows, nil
}

// skipBOM retire le BOM UTF-8 avant la lecture CSV, sinon le premier
// champ entre guillemets serait lu comme non quoté
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(bom)); err == nil && string(prefix) == bom {
		br.Discard(len(bom))
	}
	return br
}

// normalizeHeader réduit "Date d'envoi" ou "date_envoi" à "datedenvoi"/"dateenvoi"
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	var b strings.Builder
	for _, r := range h {
		switch r {
		case ' ', '_', '-', '\'', '’':
			continue
		case 'é', 'è', 'ê':
			b.WriteRune('e')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeDate accepte l'ISO 8601 et le format jj/mm/aaaa de l'export
func normalizeDate(value string) (string, error) {
	if _, err := validation.ParseDate(value, "dateEnvoi"); err == nil {
		return value, nil
	}
	t, err := time.Parse(frenchDate, value)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01-02"), nil
}

func blank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

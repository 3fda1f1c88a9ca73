// Package seed remplit la base avec des données de démonstration.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/cduffaut/jobtrack/internal/database"
	"golang.org/x/crypto/bcrypt"
)

// Password est le mot de passe commun des comptes de démonstration
const Password = "password123"

const day = 24 * time.Hour

type demoUser struct {
	email, nom, prenom, statut string
}

type demoEntreprise struct {
	nom, secteur, siteWeb, notes string
}

type demoCandidature struct {
	user, entreprise   int
	poste, typ, statut string
	envoi              time.Duration
	relance            *time.Duration
	notes              string
}

type demoInteraction struct {
	candidature int
	typ         string
	at          time.Duration
	description string
}

func durPtr(d time.Duration) *time.Duration { return &d }

var (
	users = []demoUser{
		{"thiane@gmail.com", "Dia", "Thiane", "etudiant"},
		{"bob@example.com", "Martin", "Bob", "chomeur"},
		{"alice@example.com", "Dupont", "Alice", "etudiant"},
	}

	entreprises = []demoEntreprise{
		{"Google France", "Technologie", "https://google.fr", "Entreprise leader en tech"},
		{"Microsoft", "Technologie", "https://microsoft.com", "Leader en cloud et logiciels"},
		{"Accenture", "Conseil IT", "https://accenture.com", "Conseil et services informatiques"},
		{"Société Générale", "Finance", "https://societegenerale.fr", "Banque française"},
		{"SNCF", "Transport", "https://sncf.fr", "Transport ferroviaire"},
	}

	// durées relatives à maintenant, négatives dans le passé
	candidatures = []demoCandidature{
		{0, 0, "Développeur Full Stack", "stage", "envoye", -10 * day, nil, "Candidature intéressante pour stage d'été"},
		{0, 1, "Data Engineer", "cdi", "entretien", -5 * day, durPtr(-2 * day), "Entretien prévu la semaine prochaine"},
		{0, 2, "Consultant IT", "alternance", "refus", -20 * day, nil, "Candidature refusée - pas assez d'expérience"},
		{1, 3, "Analyste Financier", "cdd", "accepte", -30 * day, nil, "Offre acceptée ! Début le 1er janvier"},
		{1, 4, "Ingénieur Réseau", "cdi", "envoye", -3 * day, nil, "Candidature récente"},
	}

	interactions = []demoInteraction{
		{1, "email", -3 * day, "Email de suivi envoyé"},
		{1, "appel", -1 * day, "Appel téléphonique avec le recruteur"},
		{1, "entretien", 5 * day, "Entretien technique prévu"},
		{3, "entretien", -8 * day, "Entretien RH et technique réalisé"},
	}
)

// Summary compte les lignes créées
type Summary struct {
	Users        int
	Entreprises  int
	Candidatures int
	Interactions int
}

// Run vide la base puis insère le jeu de démonstration dans une transaction
func Run(ctx context.Context, db *sql.DB, now time.Time) (*Summary, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("erreur lors du hachage du mot de passe: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ouverture de la transaction: %w", err)
	}
	defer tx.Rollback()

	if err := database.Reset(ctx, tx); err != nil {
		return nil, err
	}

	userIDs := make([]int, len(users))
	for i, u := range users {
		q := database.Builder().Insert("users").
			Columns("email", "password", "nom", "prenom", "statut").
			Values(u.email, string(hash), u.nom, u.prenom, u.statut)
		if userIDs[i], err = insert(ctx, tx, q); err != nil {
			return nil, fmt.Errorf("utilisateur %s: %w", u.email, err)
		}
	}

	entrepriseIDs := make([]int, len(entreprises))
	for i, e := range entreprises {
		q := database.Builder().Insert("entreprises").
			Columns("nom", "secteur", "site_web", "notes").
			Values(e.nom, e.secteur, e.siteWeb, e.notes)
		if entrepriseIDs[i], err = insert(ctx, tx, q); err != nil {
			return nil, fmt.Errorf("entreprise %s: %w", e.nom, err)
		}
	}

	candidatureIDs := make([]int, len(candidatures))
	for i, c := range candidatures {
		var relance *time.Time
		if c.relance != nil {
			t := now.Add(*c.relance)
			relance = &t
		}
		q := database.Builder().Insert("candidatures").
			Columns("user_id", "entreprise_id", "poste", "type", "statut", "date_envoi", "date_relance", "notes").
			Values(userIDs[c.user], entrepriseIDs[c.entreprise], c.poste, c.typ, c.statut, now.Add(c.envoi), relance, c.notes)
		if candidatureIDs[i], err = insert(ctx, tx, q); err != nil {
			return nil, fmt.Errorf("candidature %s: %w", c.poste, err)
		}
	}

	for _, it := range interactions {
		q := database.Builder().Insert("interactions").
			Columns("candidature_id", "type", "date", "description").
			Values(candidatureIDs[it.candidature], it.typ, now.Add(it.at), it.description)
		if _, err := insert(ctx, tx, q); err != nil {
			return nil, fmt.Errorf("interaction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("validation de la transaction: %w", err)
	}

	return &Summary{
		Users:        len(users),
		Entreprises:  len(entreprises),
		Candidatures: len(candidatures),
		Interactions: len(interactions),
	}, nil
}

func insert(ctx context.Context, tx *sql.Tx, q sq.InsertBuilder) (int, error) {
	query, args, err := q.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, err
	}
	var id int
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

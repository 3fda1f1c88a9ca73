package models

import "time"

// CandidatureType représente le type de contrat visé
type CandidatureType string

const (
	TypeStage      CandidatureType = "stage"
	TypeAlternance CandidatureType = "alternance"
	TypeCDD        CandidatureType = "cdd"
	TypeCDI        CandidatureType = "cdi"
)

// CandidatureTypes liste les types acceptés, dans l'ordre d'affichage
var CandidatureTypes = []CandidatureType{TypeStage, TypeAlternance, TypeCDD, TypeCDI}

// Valid indique si le type fait partie de l'énumération
func (t CandidatureType) Valid() bool {
	switch t {
	case TypeStage, TypeAlternance, TypeCDD, TypeCDI:
		return true
	}
	return false
}

// Statut représente l'avancement d'une candidature
type Statut string

const (
	StatutEnvoye    Statut = "envoye"
	StatutEntretien Statut = "entretien"
	StatutRefus     Statut = "refus"
	StatutAccepte   Statut = "accepte"
)

// Statuts liste les statuts acceptés
var Statuts = []Statut{StatutEnvoye, StatutEntretien, StatutRefus, StatutAccepte}

// Valid indique si le statut fait partie de l'énumération
func (s Statut) Valid() bool {
	switch s {
	case StatutEnvoye, StatutEntretien, StatutRefus, StatutAccepte:
		return true
	}
	return false
}

// InteractionType représente la nature d'un échange avec l'entreprise
type InteractionType string

const (
	InteractionEmail     InteractionType = "email"
	InteractionAppel     InteractionType = "appel"
	InteractionEntretien InteractionType = "entretien"
)

// Valid indique si le type d'interaction fait partie de l'énumération
func (t InteractionType) Valid() bool {
	switch t {
	case InteractionEmail, InteractionAppel, InteractionEntretien:
		return true
	}
	return false
}

// Entreprise est partagée entre tous les utilisateurs
type Entreprise struct {
	ID      int     `json:"id"`
	Nom     string  `json:"nom"`
	Secteur *string `json:"secteur,omitempty"`
	SiteWeb *string `json:"siteWeb,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// Candidature appartient exclusivement à UserID
type Candidature struct {
	ID           int             `json:"id"`
	UserID       int             `json:"userId"`
	EntrepriseID int             `json:"entrepriseId"`
	Poste        string          `json:"poste"`
	Type         CandidatureType `json:"type"`
	Statut       Statut          `json:"statut"`
	DateEnvoi    time.Time       `json:"dateEnvoi"`
	DateRelance  *time.Time      `json:"dateRelance,omitempty"`
	CvURL        *string         `json:"cvUrl,omitempty"`
	LettreURL    *string         `json:"lettreUrl,omitempty"`
	Notes        *string         `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`

	Entreprise   *Entreprise   `json:"entreprise,omitempty"`
	Interactions []Interaction `json:"interactions"`
}

// Interaction est rattachée à une candidature, donc à son propriétaire
type Interaction struct {
	ID            int             `json:"id"`
	CandidatureID int             `json:"candidatureId"`
	Type          InteractionType `json:"type"`
	Date          time.Time       `json:"date"`
	Description   *string         `json:"description,omitempty"`
}

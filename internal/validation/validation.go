// internal/validation/validation.go
package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/cduffaut/jobtrack/internal/models"
)

// Règles de validation
const (
	MaxPasswordLength = 72 // limite de bcrypt
	MaxEmailLength    = 254
	MaxNameLength     = 100
	MaxPosteLength    = 200
	MaxNotesLength    = 5000
)

// ValidationError représente une erreur de validation sur un champ
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap permet errors.Is(err, models.ErrValidation)
func (e ValidationError) Unwrap() error { return models.ErrValidation }

// ValidationErrors représente une liste d'erreurs de validation
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "aucune erreur de validation"
	}

	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

func (e ValidationErrors) Unwrap() error { return models.ErrValidation }

// New crée une erreur de validation pour un champ
func New(field, message string) error {
	return ValidationError{Field: field, Message: message}
}

// Required vérifie qu'un champ texte n'est pas vide
func Required(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Message: "champ requis"}
	}
	return nil
}

// ValidateEmail valide un email
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)

	if email == "" {
		return ValidationError{Field: "email", Message: "l'email est obligatoire"}
	}

	if len(email) > MaxEmailLength {
		return ValidationError{Field: "email", Message: fmt.Sprintf("l'email est trop long (max %d caractères)", MaxEmailLength)}
	}

	if containsHTMLTags(email) {
		return ValidationError{Field: "email", Message: "l'email ne peut pas contenir de balises HTML"}
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return ValidationError{Field: "email", Message: "format d'email invalide"}
	}

	return nil
}

// ValidatePassword valide un mot de passe
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "le mot de passe est obligatoire"}
	}

	if len(password) > MaxPasswordLength {
		return ValidationError{Field: "password", Message: fmt.Sprintf("le mot de passe doit contenir au maximum %d caractères", MaxPasswordLength)}
	}

	return nil
}

// ValidateName valide un nom, un prénom ou un statut de profil
func ValidateName(name, fieldName string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return ValidationError{Field: fieldName, Message: fmt.Sprintf("le champ %s est obligatoire", fieldName)}
	}

	if len(name) > MaxNameLength {
		return ValidationError{Field: fieldName, Message: fmt.Sprintf("le champ %s doit contenir au maximum %d caractères", fieldName, MaxNameLength)}
	}

	if containsHTMLTags(name) {
		return ValidationError{Field: fieldName, Message: fmt.Sprintf("le champ %s ne peut pas contenir de balises HTML", fieldName)}
	}

	return nil
}

// ValidateRegistration valide tous les champs d'inscription
func ValidateRegistration(email, password, nom, prenom, statut string) error {
	var errs ValidationErrors

	collect := func(err error) {
		if ve, ok := err.(ValidationError); ok {
			errs = append(errs, ve)
		}
	}

	collect(ValidateEmail(email))
	collect(ValidatePassword(password))
	collect(ValidateName(nom, "nom"))
	collect(ValidateName(prenom, "prenom"))
	collect(ValidateName(statut, "statut"))

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateCandidatureType vérifie un type de candidature
func ValidateCandidatureType(t string) (models.CandidatureType, error) {
	ct := models.CandidatureType(strings.TrimSpace(t))
	if !ct.Valid() {
		return "", ValidationError{Field: "type", Message: "type de candidature invalide (stage, alternance, cdd, cdi)"}
	}
	return ct, nil
}

// ValidateStatut vérifie un statut de candidature
func ValidateStatut(s string) (models.Statut, error) {
	st := models.Statut(strings.TrimSpace(s))
	if !st.Valid() {
		return "", ValidationError{Field: "statut", Message: "statut de candidature invalide (envoye, entretien, refus, accepte)"}
	}
	return st, nil
}

// ValidateInteractionType vérifie un type d'interaction
func ValidateInteractionType(t string) (models.InteractionType, error) {
	it := models.InteractionType(strings.TrimSpace(t))
	if !it.Valid() {
		return "", ValidationError{Field: "type", Message: "type d'interaction invalide (email, appel, entretien)"}
	}
	return it, nil
}

// formats acceptés, du plus précis au plus court
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate lit une date ISO 8601 (date seule ou date+heure)
func ParseDate(value, field string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ValidationError{Field: field, Message: "date requise"}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, ValidationError{Field: field, Message: "date invalide"}
}

// IsDateOnly indique si la valeur ne porte pas d'heure (YYYY-MM-DD)
func IsDateOnly(value string) bool {
	_, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	return err == nil
}

// ValidateLength borne la longueur d'un champ libre
func ValidateLength(value, field string, max int) error {
	if len(value) > max {
		return ValidationError{Field: field, Message: fmt.Sprintf("%d caractères maximum", max)}
	}
	return nil
}

// SanitizeInput nettoie une chaîne d'entrée
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = controlChars.ReplaceAllString(input, "")
	return input
}

var (
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
	controlChars   = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)
)

// containsHTMLTags vérifie si une chaîne contient des balises HTML
func containsHTMLTags(input string) bool {
	return htmlTagPattern.MatchString(input)
}

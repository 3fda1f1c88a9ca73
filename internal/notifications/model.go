package notifications

import (
	"time"
)

// NotificationType représente le type de notification
type NotificationType string

const (
	NotificationEntretien NotificationType = "entretien" // entretien à venir
	NotificationRelance   NotificationType = "relance"   // relance à faire
	NotificationUrgence   NotificationType = "urgence"   // l'un ou l'autre dans les 24h
)

// Notification est un rappel calculé à la demande, jamais stocké
type Notification struct {
	ID            string           `json:"id"`
	Type          NotificationType `json:"type"`
	Title         string           `json:"title"`
	Message       string           `json:"message"`
	CandidatureID int              `json:"candidatureId"`
	Date          time.Time        `json:"date"`
}

const (
	DefaultHorizon = 72 * time.Hour
	MaxHorizon     = 720 * time.Hour
	urgentWithin   = 24 * time.Hour
	soonWithin     = 48 * time.Hour
)

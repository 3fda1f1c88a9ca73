package models

import "errors"

// Erreurs sentinelles partagées par toutes les couches.
// Les handlers les traduisent en codes HTTP via errors.Is.
var (
	ErrValidation   = errors.New("données invalides")
	ErrUnauthorized = errors.New("non authentifié")
	ErrNotFound     = errors.New("ressource introuvable")
	ErrConflict     = errors.New("conflit")
)

// Error porte un message destiné au client et une catégorie sentinelle
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// NewError associe un message lisible à une catégorie d'erreur
func NewError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

package models

import "time"

// User représente un utilisateur du système
type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // hash bcrypt, jamais exposé
	Nom       string    `json:"nom"`
	Prenom    string    `json:"prenom"`
	Statut    string    `json:"statut"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserSummary est la vue publique renvoyée avec un token
type UserSummary struct {
	ID     int    `json:"id"`
	Email  string `json:"email"`
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
	Statut string `json:"statut"`
}

// Summary construit la vue publique d'un utilisateur
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:     u.ID,
		Email:  u.Email,
		Nom:    u.Nom,
		Prenom: u.Prenom,
		Statut: u.Statut,
	}
}

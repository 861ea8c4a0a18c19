package domain

import "time"

// User is a registered identity. Email is the login key and is unique.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt or argon2id encoded, never plaintext

	// Optional profile fields, empty when unset.
	UserName   string
	Position   string
	Experience string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account. Passwords are stored as bcrypt hashes only.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

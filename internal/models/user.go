package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the stored account row. The password hash never leaves the
// server: it is excluded from JSON serialization.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// UserMessage is the wire shape for creating and updating users. The
// password here is plaintext in transit only; it is hashed before any
// row is written.
type UserMessage struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// CreateUserParams carries an already-hashed credential into the
// repository, so a hashed value can never be re-hashed by mistake.
type CreateUserParams struct {
	Email        string
	Name         string
	PasswordHash string
}

// Package models contains the persisted domain records of the tracke.rs
// server.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. Every protected resource in the system is owned,
// directly or transitively, by exactly one user.
type User struct {
	ID        uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Password  []byte    `json:"-"` // bcrypt hash
	CreatedAt time.Time `json:"created_at"`
}

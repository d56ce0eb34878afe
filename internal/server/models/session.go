package models

import (
	"time"

	"github.com/google/uuid"
)

// Session pairs an issued access token (and, for grants that allow
// refreshing, a refresh token) with its owner and validity bounds. Exactly
// one row exists per issued token pair; a refresh replaces the token strings
// in place without extending ValidUntil.
type Session struct {
	UserID       uuid.UUID
	AccessToken  string
	RefreshToken string // empty for client-credentials sessions
	StartedAt    time.Time
	ValidUntil   time.Time
}

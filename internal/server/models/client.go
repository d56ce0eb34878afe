package models

import (
	"time"

	"github.com/google/uuid"
)

// AuthorizedClient is a machine account registered by a user. The client
// authenticates through the client_credentials grant with its id and secret
// and acts with the owning user's resource capability.
type AuthorizedClient struct {
	ClientID     uuid.UUID `json:"client_id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	Website      *string   `json:"website,omitempty"`
	ClientSecret []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthorizedClientInput is the payload for registering a client.
type AuthorizedClientInput struct {
	UserID  uuid.UUID `json:"user_id"`
	Name    string    `json:"name"`
	Website *string   `json:"website,omitempty"`
}

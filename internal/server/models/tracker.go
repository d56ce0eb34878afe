package models

import "github.com/google/uuid"

// Tracker groups tasks under one user. A user always has a default tracker;
// tasks created without an explicit tracker land there, and the default
// tracker cannot be deleted.
type Tracker struct {
	ID        uuid.UUID `json:"tracker_id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"is_default"`
}

// TrackerInput is the payload for creating a tracker.
type TrackerInput struct {
	ID        *uuid.UUID `json:"tracker_id,omitempty"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Name      string     `json:"name"`
	IsDefault bool       `json:"is_default"`
}

// TrackerPatch carries optional field updates for a tracker.
type TrackerPatch struct {
	ID        *uuid.UUID `json:"tracker_id,omitempty"`
	Name      *string    `json:"name,omitempty"`
	IsDefault *bool      `json:"is_default,omitempty"`
}

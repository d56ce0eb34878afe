package models

import (
	"time"

	"github.com/google/uuid"
)

// Task is the primary unit of information within the application. A task is
// checkmarked (completed) when CheckmarkedAt is set; the boolean is derived
// from the stored completion timestamp when loading.
type Task struct {
	ID            uuid.UUID  `json:"task_id"`
	TrackerID     uuid.UUID  `json:"tracker_id"`
	Checkmarked   bool       `json:"checkmarked"`
	CheckmarkedAt *time.Time `json:"checkmarked_at,omitempty"`
	// Title is the only required descriptive field, it can serve as the
	// sole description of the task.
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	TimeEstimate *string    `json:"time_estimate,omitempty"`
	SoftDeadline *time.Time `json:"soft_deadline,omitempty"`
	HardDeadline *time.Time `json:"hard_deadline,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
}

// TaskInput is the payload for creating a task. The tracker id may be
// omitted, in which case the task lands in the caller's default tracker.
type TaskInput struct {
	ID            *uuid.UUID `json:"task_id,omitempty"`
	TrackerID     *uuid.UUID `json:"tracker_id,omitempty"`
	Title         string     `json:"title"`
	Checkmarked   bool       `json:"checkmarked"`
	CheckmarkedAt *time.Time `json:"checkmarked_at,omitempty"`
	Description   *string    `json:"description,omitempty"`
	TimeEstimate  *string    `json:"time_estimate,omitempty"`
	SoftDeadline  *time.Time `json:"soft_deadline,omitempty"`
	HardDeadline  *time.Time `json:"hard_deadline,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
}

// CompletedAt resolves the stored completion timestamp for a new task from
// the checkmarked flag and optional explicit timestamp.
func (in TaskInput) CompletedAt(now time.Time) *time.Time {
	if !in.Checkmarked {
		return nil
	}
	if in.CheckmarkedAt != nil {
		return in.CheckmarkedAt
	}
	return &now
}

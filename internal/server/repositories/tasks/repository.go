package tasks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/adhalianna/trackers/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	ListByTracker(ctx context.Context, trackerID uuid.UUID) ([]models.Task, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) (*models.Task, error)
	SetCompleted(ctx context.Context, id uuid.UUID, completedAt *time.Time) error
	OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

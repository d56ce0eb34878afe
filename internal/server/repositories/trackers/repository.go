package trackers

import (
	"context"

	"github.com/google/uuid"

	"github.com/adhalianna/trackers/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, tracker *models.Tracker) (*models.Tracker, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tracker, error)
	GetDefaultForUser(ctx context.Context, userID uuid.UUID) (*models.Tracker, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Tracker, error)
	Update(ctx context.Context, tracker *models.Tracker) (*models.Tracker, error)
	ClearDefault(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

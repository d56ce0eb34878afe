package attachments

import (
	"context"

	"github.com/google/uuid"

	"github.com/adhalianna/trackers/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, attachment *models.Attachment) (*models.Attachment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Attachment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.Attachment, error)
	MarkUploaded(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

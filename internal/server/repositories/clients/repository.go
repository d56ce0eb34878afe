package clients

import (
	"context"

	"github.com/google/uuid"

	"github.com/adhalianna/trackers/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, client *models.AuthorizedClient) (*models.AuthorizedClient, error)
	GetByID(ctx context.Context, clientID uuid.UUID) (*models.AuthorizedClient, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.AuthorizedClient, error)
	Delete(ctx context.Context, clientID uuid.UUID) error
}

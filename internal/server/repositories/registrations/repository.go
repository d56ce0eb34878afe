package registrations

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/adhalianna/trackers/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, request *models.RegistrationRequest) error
	GetByEmail(ctx context.Context, email string) (*models.RegistrationRequest, error)
	GetByEmailAndCode(ctx context.Context, email, code string) (*models.RegistrationRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

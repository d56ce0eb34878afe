package sessions

import (
	"context"
	"time"

	"github.com/adhalianna/trackers/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByRefreshToken(ctx context.Context, refreshToken string) (*models.Session, error)
	UpdateTokens(ctx context.Context, oldRefreshToken, accessToken, refreshToken string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/adhalianna/trackers/internal/common"
	"github.com/adhalianna/trackers/internal/server/models"
	"github.com/adhalianna/trackers/internal/server/repositories/repomanager"
)

// ClientService manages authorized machine clients. The client secret is
// generated server-side and returned exactly once, at registration; only its
// hash is stored.
type ClientService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewClientService(db *sql.DB, m repomanager.RepositoryManager) *ClientService {
	return &ClientService{db: db, repomanager: m}
}

// Register creates a client for the calling user and returns the client
// together with its plaintext secret.
func (s *ClientService) Register(ctx context.Context, callerID uuid.UUID, input models.AuthorizedClientInput) (*models.AuthorizedClient, string, error) {
	if input.UserID != callerID {
		return nil, "", common.ErrSessionUserMismatch
	}

	clientID, err := uuid.NewV7()
	if err != nil {
		return nil, "", common.ErrorInternal
	}
	secret, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, "", common.ErrorInternal
	}
	hash, err := models.HashPassword(secret)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	client := &models.AuthorizedClient{
		ClientID:     clientID,
		UserID:       callerID,
		Name:         input.Name,
		Website:      input.Website,
		ClientSecret: hash,
	}
	if _, err := s.repomanager.Clients(s.db).Create(ctx, client); err != nil {
		return nil, "", common.ErrorInternal
	}

	return client, secret, nil
}

// ListForUser returns the clients registered by the given user. The caller
// must be that user.
func (s *ClientService) ListForUser(ctx context.Context, callerID, userID uuid.UUID) ([]models.AuthorizedClient, error) {
	if callerID != userID {
		return nil, common.ErrSessionUserMismatch
	}
	result, err := s.repomanager.Clients(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

// Get returns one of the caller's clients.
func (s *ClientService) Get(ctx context.Context, callerID, clientID uuid.UUID) (*models.AuthorizedClient, error) {
	client, err := s.repomanager.Clients(s.db).GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	if client.UserID != callerID {
		return nil, common.ErrorForbidden
	}
	return client, nil
}

// Revoke deletes one of the caller's clients.
func (s *ClientService) Revoke(ctx context.Context, callerID, clientID uuid.UUID) error {
	client, err := s.repomanager.Clients(s.db).GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	if client.UserID != callerID {
		return common.ErrorForbidden
	}
	if err := s.repomanager.Clients(s.db).Delete(ctx, clientID); err != nil {
		return common.ErrorInternal
	}
	return nil
}

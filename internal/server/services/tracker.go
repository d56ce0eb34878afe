package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/adhalianna/trackers/internal/common"
	"github.com/adhalianna/trackers/internal/dbx"
	"github.com/adhalianna/trackers/internal/server/models"
	"github.com/adhalianna/trackers/internal/server/repositories/repomanager"
)

// TrackerService manages task trackers. Every operation takes the calling
// session's user id and refuses to touch trackers owned by anyone else.
type TrackerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTrackerService(db *sql.DB, m repomanager.RepositoryManager) *TrackerService {
	return &TrackerService{db: db, repomanager: m}
}

// Create adds a tracker for the calling user. A payload naming a different
// user is rejected.
func (s *TrackerService) Create(ctx context.Context, callerID uuid.UUID, input models.TrackerInput) (*models.Tracker, error) {
	if input.UserID != nil && *input.UserID != callerID {
		return nil, common.ErrTrackerForOtherUser
	}

	id := uuid.Nil
	if input.ID != nil {
		id = *input.ID
	} else {
		var err error
		if id, err = uuid.NewV7(); err != nil {
			return nil, common.ErrorInternal
		}
	}

	tracker := &models.Tracker{
		ID:        id,
		UserID:    callerID,
		Name:      input.Name,
		IsDefault: input.IsDefault,
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Trackers(tx)
		if tracker.IsDefault {
			if err := repo.ClearDefault(ctx, callerID); err != nil {
				return err
			}
		}
		_, err := repo.Create(ctx, tracker)
		return err
	}); err != nil {
		return nil, fmt.Errorf("error creating tracker: %v", err)
	}

	return tracker, nil
}

// Get fetches one tracker, provided the caller owns it.
func (s *TrackerService) Get(ctx context.Context, callerID, trackerID uuid.UUID) (*models.Tracker, error) {
	tracker, err := s.repomanager.Trackers(s.db).GetByID(ctx, trackerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrNoSuchTracker
		}
		return nil, common.ErrorInternal
	}
	if tracker.UserID != callerID {
		return nil, common.ErrNoTrackerAccess
	}
	return tracker, nil
}

// ListForUser returns the trackers of the given user. The caller must be
// that user.
func (s *TrackerService) ListForUser(ctx context.Context, callerID, userID uuid.UUID) ([]models.Tracker, error) {
	if callerID != userID {
		return nil, common.ErrSessionUserMismatch
	}
	result, err := s.repomanager.Trackers(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

// Update applies a patch to the caller's tracker. A body naming a different
// tracker id than the one addressed is rejected.
func (s *TrackerService) Update(ctx context.Context, callerID, trackerID uuid.UUID, patch models.TrackerPatch) (*models.Tracker, error) {
	if patch.ID != nil && *patch.ID != trackerID {
		return nil, common.ErrTrackerIDMismatch
	}

	tracker, err := s.Get(ctx, callerID, trackerID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		tracker.Name = *patch.Name
	}
	makeDefault := patch.IsDefault != nil && *patch.IsDefault && !tracker.IsDefault
	if patch.IsDefault != nil {
		tracker.IsDefault = *patch.IsDefault
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Trackers(tx)
		if makeDefault {
			if err := repo.ClearDefault(ctx, callerID); err != nil {
				return err
			}
		}
		_, err := repo.Update(ctx, tracker)
		return err
	}); err != nil {
		return nil, fmt.Errorf("error updating tracker: %v", err)
	}

	return tracker, nil
}

// Delete removes the caller's tracker together with its tasks. The default
// tracker cannot be deleted.
func (s *TrackerService) Delete(ctx context.Context, callerID, trackerID uuid.UUID) error {
	tracker, err := s.Get(ctx, callerID, trackerID)
	if err != nil {
		return err
	}
	if tracker.IsDefault {
		return common.ErrorConflict
	}
	if err := s.repomanager.Trackers(s.db).Delete(ctx, trackerID); err != nil {
		return common.ErrorInternal
	}
	return nil
}

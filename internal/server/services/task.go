package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/adhalianna/trackers/internal/common"
	"github.com/adhalianna/trackers/internal/server/models"
	"github.com/adhalianna/trackers/internal/server/repositories/repomanager"
)

// TaskService manages tasks. Ownership is resolved through the tracker a
// task belongs to; a caller can only see or change tasks inside their own
// trackers.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// resolveTracker validates that the target tracker exists and belongs to the
// caller. A nil tracker id resolves to the caller's default tracker.
func (s *TaskService) resolveTracker(ctx context.Context, callerID uuid.UUID, trackerID *uuid.UUID) (uuid.UUID, error) {
	repo := s.repomanager.Trackers(s.db)

	if trackerID == nil {
		tracker, err := repo.GetDefaultForUser(ctx, callerID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return uuid.Nil, common.ErrNoSuchTracker
			}
			return uuid.Nil, common.ErrorInternal
		}
		return tracker.ID, nil
	}

	tracker, err := repo.GetByID(ctx, *trackerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return uuid.Nil, common.ErrNoSuchTracker
		}
		return uuid.Nil, common.ErrorInternal
	}
	if tracker.UserID != callerID {
		return uuid.Nil, common.ErrNoTaskTrackerAccess
	}
	return tracker.ID, nil
}

// authorize checks that the caller owns the tracker the task lives in.
func (s *TaskService) authorize(ctx context.Context, callerID, taskID uuid.UUID) error {
	owner, err := s.repomanager.Tasks(s.db).OwnerOf(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	if owner != callerID {
		return common.ErrNoTaskTrackerAccess
	}
	return nil
}

// Create adds a task. Without an explicit tracker the task lands in the
// caller's default tracker.
func (s *TaskService) Create(ctx context.Context, callerID uuid.UUID, input models.TaskInput) (*models.Task, error) {
	trackerID, err := s.resolveTracker(ctx, callerID, input.TrackerID)
	if err != nil {
		return nil, err
	}

	id := uuid.Nil
	if input.ID != nil {
		id = *input.ID
	} else {
		if id, err = uuid.NewV7(); err != nil {
			return nil, common.ErrorInternal
		}
	}

	task := &models.Task{
		ID:            id,
		TrackerID:     trackerID,
		Title:         input.Title,
		Description:   input.Description,
		CheckmarkedAt: input.CompletedAt(time.Now()),
		TimeEstimate:  input.TimeEstimate,
		SoftDeadline:  input.SoftDeadline,
		HardDeadline:  input.HardDeadline,
		Tags:          input.Tags,
	}

	if _, err := s.repomanager.Tasks(s.db).Create(ctx, task); err != nil {
		return nil, common.ErrorInternal
	}

	return task, nil
}

// Get fetches one task the caller has access to.
func (s *TaskService) Get(ctx context.Context, callerID, taskID uuid.UUID) (*models.Task, error) {
	if err := s.authorize(ctx, callerID, taskID); err != nil {
		return nil, err
	}
	task, err := s.repomanager.Tasks(s.db).GetByID(ctx, taskID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return task, nil
}

// ListForTracker returns the tasks of one of the caller's trackers.
func (s *TaskService) ListForTracker(ctx context.Context, callerID, trackerID uuid.UUID) ([]models.Task, error) {
	if _, err := s.resolveTracker(ctx, callerID, &trackerID); err != nil {
		return nil, err
	}
	result, err := s.repomanager.Tasks(s.db).ListByTracker(ctx, trackerID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

// ListForUser returns every task across the given user's trackers. The
// caller must be that user.
func (s *TaskService) ListForUser(ctx context.Context, callerID, userID uuid.UUID) ([]models.Task, error) {
	if callerID != userID {
		return nil, common.ErrSessionUserMismatch
	}
	result, err := s.repomanager.Tasks(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

// Update replaces the mutable fields of a task. Moving a task to another
// tracker requires access to that tracker too.
func (s *TaskService) Update(ctx context.Context, callerID, taskID uuid.UUID, input models.TaskInput) (*models.Task, error) {
	if err := s.authorize(ctx, callerID, taskID); err != nil {
		return nil, err
	}

	task, err := s.repomanager.Tasks(s.db).GetByID(ctx, taskID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	if input.TrackerID != nil && *input.TrackerID != task.TrackerID {
		trackerID, err := s.resolveTracker(ctx, callerID, input.TrackerID)
		if err != nil {
			return nil, err
		}
		task.TrackerID = trackerID
	}

	task.Title = input.Title
	task.Description = input.Description
	task.CheckmarkedAt = input.CompletedAt(time.Now())
	task.Checkmarked = task.CheckmarkedAt != nil
	task.TimeEstimate = input.TimeEstimate
	task.SoftDeadline = input.SoftDeadline
	task.HardDeadline = input.HardDeadline
	task.Tags = input.Tags

	if _, err := s.repomanager.Tasks(s.db).Update(ctx, task); err != nil {
		return nil, common.ErrorInternal
	}

	return task, nil
}

// Checkmark marks a task completed or clears its completion.
func (s *TaskService) Checkmark(ctx context.Context, callerID, taskID uuid.UUID, checkmarked bool) (*models.Task, error) {
	if err := s.authorize(ctx, callerID, taskID); err != nil {
		return nil, err
	}

	var completedAt *time.Time
	if checkmarked {
		now := time.Now()
		completedAt = &now
	}
	if err := s.repomanager.Tasks(s.db).SetCompleted(ctx, taskID, completedAt); err != nil {
		return nil, common.ErrorInternal
	}

	task, err := s.repomanager.Tasks(s.db).GetByID(ctx, taskID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return task, nil
}

// Delete removes a task the caller has access to.
func (s *TaskService) Delete(ctx context.Context, callerID, taskID uuid.UUID) error {
	if err := s.authorize(ctx, callerID, taskID); err != nil {
		return err
	}
	if err := s.repomanager.Tasks(s.db).Delete(ctx, taskID); err != nil {
		return common.ErrorInternal
	}
	return nil
}

// Package tasks provides a PostgreSQL-backed repository for tasks. Tags are
// stored as a JSONB array.
package tasks

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adhalianna/trackers/internal/common"
	"github.com/adhalianna/trackers/internal/dbx"
	"github.com/adhalianna/trackers/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const taskColumns = `task_id, tracker_id, title, description, completed_at,
	time_estimate, soft_deadline, hard_deadline, tags`

func tagsValue(tags []string) (any, error) {
	if tags == nil {
		return nil, nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return b, nil
}

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	task := &models.Task{}
	var completedAt *time.Time
	var tags []byte

	err := row.Scan(&task.ID, &task.TrackerID, &task.Title, &task.Description,
		&completedAt, &task.TimeEstimate, &task.SoftDeadline, &task.HardDeadline, &tags)
	if err != nil {
		return nil, err
	}

	task.CheckmarkedAt = completedAt
	task.Checkmarked = completedAt != nil
	if tags != nil {
		if err := json.Unmarshal(tags, &task.Tags); err != nil {
			return nil, err
		}
	}

	return task, nil
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {

	query :=
		`INSERT INTO tasks (` + taskColumns + `)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 `

	tags, err := tagsValue(task.Tags)
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx, query,
		task.ID, task.TrackerID, task.Title, task.Description, task.CheckmarkedAt,
		task.TimeEstimate, task.SoftDeadline, task.HardDeadline, tags)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	task.Checkmarked = task.CheckmarkedAt != nil

	return task, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	query :=
		`SELECT ` + taskColumns + ` FROM tasks
		 WHERE task_id = $1
		 `

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) ListByTracker(ctx context.Context, trackerID uuid.UUID) ([]models.Task, error) {
	query :=
		`SELECT ` + taskColumns + ` FROM tasks
		 WHERE tracker_id = $1
		 ORDER BY task_id
		 `

	return r.list(ctx, query, trackerID)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Task, error) {
	query :=
		`SELECT t.task_id, t.tracker_id, t.title, t.description, t.completed_at,
			t.time_estimate, t.soft_deadline, t.hard_deadline, t.tags
		 FROM tasks t
		 JOIN trackers tr ON tr.tracker_id = t.tracker_id
		 WHERE tr.user_id = $1
		 ORDER BY t.task_id
		 `

	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, arg any) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`UPDATE tasks SET tracker_id = $2, title = $3, description = $4,
			completed_at = $5, time_estimate = $6, soft_deadline = $7,
			hard_deadline = $8, tags = $9
		 WHERE task_id = $1
		 `

	tags, err := tagsValue(task.Tags)
	if err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, query,
		task.ID, task.TrackerID, task.Title, task.Description, task.CheckmarkedAt,
		task.TimeEstimate, task.SoftDeadline, task.HardDeadline, tags)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return nil, common.ErrorNotFound
	}

	task.Checkmarked = task.CheckmarkedAt != nil

	return task, nil
}

// SetCompleted sets or clears the completion timestamp of a task.
func (r *PostgresRepository) SetCompleted(ctx context.Context, id uuid.UUID, completedAt *time.Time) error {
	query :=
		`UPDATE tasks SET completed_at = $2
		 WHERE task_id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, completedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// OwnerOf resolves the user owning the tracker the task belongs to.
func (r *PostgresRepository) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	query :=
		`SELECT tr.user_id
		 FROM tasks t
		 JOIN trackers tr ON tr.tracker_id = t.tracker_id
		 WHERE t.task_id = $1
		 `

	var userID uuid.UUID
	err := r.db.QueryRowContext(ctx, query, id).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, common.ErrorNotFound
		}
		return uuid.Nil, fmt.Errorf("db error: %w", err)
	}

	return userID, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query :=
		`DELETE FROM tasks
		 WHERE task_id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// Package trackers provides a PostgreSQL-backed repository for task
// trackers.
package trackers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

func (r *PostgresRepository) Create(ctx context.Context, tracker *models.Tracker) (*models.Tracker, error) {

	query :=
		`INSERT INTO trackers (tracker_id, user_id, name, is_default)
         VALUES ($1, $2, $3, $4)
		 `

	_, err := r.db.ExecContext(ctx, query,
		tracker.ID, tracker.UserID, tracker.Name, tracker.IsDefault)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tracker, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tracker, error) {
	query :=
		`SELECT tracker_id, user_id, name, is_default FROM trackers
		 WHERE tracker_id = $1
		 `

	tracker := &models.Tracker{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&tracker.ID, &tracker.UserID, &tracker.Name, &tracker.IsDefault)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tracker, nil
}

func (r *PostgresRepository) GetDefaultForUser(ctx context.Context, userID uuid.UUID) (*models.Tracker, error) {
	query :=
		`SELECT tracker_id, user_id, name, is_default FROM trackers
		 WHERE user_id = $1 AND is_default
		 `

	tracker := &models.Tracker{}
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&tracker.ID, &tracker.UserID, &tracker.Name, &tracker.IsDefault)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tracker, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Tracker, error) {
	query :=
		`SELECT tracker_id, user_id, name, is_default FROM trackers
		 WHERE user_id = $1
		 ORDER BY name
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Tracker
	for rows.Next() {
		var tracker models.Tracker
		if err := rows.Scan(&tracker.ID, &tracker.UserID, &tracker.Name, &tracker.IsDefault); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, tracker)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, tracker *models.Tracker) (*models.Tracker, error) {
	query :=
		`UPDATE trackers SET name = $2, is_default = $3
		 WHERE tracker_id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, tracker.ID, tracker.Name, tracker.IsDefault)
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

	return tracker, nil
}

// ClearDefault drops the default flag from the user's current default
// tracker so another one can take it without violating the partial unique
// index.
func (r *PostgresRepository) ClearDefault(ctx context.Context, userID uuid.UUID) error {
	query :=
		`UPDATE trackers SET is_default = false
		 WHERE user_id = $1 AND is_default
		 `

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query :=
		`DELETE FROM trackers
		 WHERE tracker_id = $1
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

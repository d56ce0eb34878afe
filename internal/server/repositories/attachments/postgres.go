// Package attachments provides a PostgreSQL-backed repository for task
// attachment metadata. File bodies live in object storage.
package attachments

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

func (r *PostgresRepository) Create(ctx context.Context, attachment *models.Attachment) (*models.Attachment, error) {

	query :=
		`INSERT INTO attachments (attachment_id, task_id, file_name, storage_key, upload_status)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		attachment.ID, attachment.TaskID, attachment.FileName,
		attachment.StorageKey, attachment.Status).
		Scan(&attachment.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return attachment, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Attachment, error) {
	query :=
		`SELECT attachment_id, task_id, file_name, storage_key, upload_status, created_at FROM attachments
		 WHERE attachment_id = $1
		 `

	attachment := &models.Attachment{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&attachment.ID, &attachment.TaskID, &attachment.FileName,
			&attachment.StorageKey, &attachment.Status, &attachment.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return attachment, nil
}

func (r *PostgresRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.Attachment, error) {
	query :=
		`SELECT attachment_id, task_id, file_name, storage_key, upload_status, created_at FROM attachments
		 WHERE task_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Attachment
	for rows.Next() {
		var attachment models.Attachment
		if err := rows.Scan(&attachment.ID, &attachment.TaskID, &attachment.FileName,
			&attachment.StorageKey, &attachment.Status, &attachment.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, attachment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) MarkUploaded(ctx context.Context, id uuid.UUID) error {
	query :=
		`UPDATE attachments SET upload_status = $2
		 WHERE attachment_id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, models.UploadStatusUploaded)
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

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query :=
		`DELETE FROM attachments
		 WHERE attachment_id = $1
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

// Package registrations provides a PostgreSQL-backed repository for pending
// account registration requests.
package registrations

import (
	"context"
	"database/sql"
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

func (r *PostgresRepository) Create(ctx context.Context, request *models.RegistrationRequest) error {

	query :=
		`INSERT INTO registration_requests (request_id, email, password, confirmation_code, issued_at, valid_until)
         VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query,
		request.ID, request.Email, request.Password, request.ConfirmationCode,
		request.IssuedAt, request.ValidUntil)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.RegistrationRequest, error) {
	query :=
		`SELECT request_id, email, password, confirmation_code, issued_at, valid_until FROM registration_requests
		 WHERE email = $1
		 ORDER BY issued_at DESC
		 LIMIT 1
		 `

	request := &models.RegistrationRequest{}
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&request.ID, &request.Email, &request.Password, &request.ConfirmationCode,
			&request.IssuedAt, &request.ValidUntil)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return request, nil
}

func (r *PostgresRepository) GetByEmailAndCode(ctx context.Context, email, code string) (*models.RegistrationRequest, error) {
	query :=
		`SELECT request_id, email, password, confirmation_code, issued_at, valid_until FROM registration_requests
		 WHERE email = $1 AND confirmation_code = $2
		 `

	request := &models.RegistrationRequest{}
	err := r.db.QueryRowContext(ctx, query, email, code).
		Scan(&request.ID, &request.Email, &request.Password, &request.ConfirmationCode,
			&request.IssuedAt, &request.ValidUntil)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return request, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query :=
		`DELETE FROM registration_requests
		 WHERE request_id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query :=
		`DELETE FROM registration_requests
		 WHERE valid_until < $1
		 `

	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return affected, nil
}

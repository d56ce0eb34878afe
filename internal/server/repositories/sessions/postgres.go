// Package sessions provides a PostgreSQL-backed repository for user and
// client sessions.
package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

func (r *PostgresRepository) Create(ctx context.Context, session *models.Session) error {

	query :=
		`INSERT INTO sessions (access_token, refresh_token, user_id, started_at, valid_until)
         VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query,
		session.AccessToken, session.RefreshToken, session.UserID,
		session.StartedAt, session.ValidUntil)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByRefreshToken(ctx context.Context, refreshToken string) (*models.Session, error) {
	query :=
		`SELECT access_token, refresh_token, user_id, started_at, valid_until FROM sessions
		 WHERE refresh_token = $1 AND refresh_token <> ''
		 `

	session := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, refreshToken).
		Scan(&session.AccessToken, &session.RefreshToken, &session.UserID,
			&session.StartedAt, &session.ValidUntil)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return session, nil
}

// UpdateTokens rotates the token pair of the session identified by its
// current refresh token. The session window (valid_until) stays unchanged.
func (r *PostgresRepository) UpdateTokens(ctx context.Context, oldRefreshToken, accessToken, refreshToken string) error {
	query :=
		`UPDATE sessions SET access_token = $2, refresh_token = $3
		 WHERE refresh_token = $1 AND refresh_token <> ''
		 `

	res, err := r.db.ExecContext(ctx, query, oldRefreshToken, accessToken, refreshToken)
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

func (r *PostgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query :=
		`DELETE FROM sessions
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

// Package clients provides a PostgreSQL-backed repository for authorized
// machine clients.
package clients

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

func (r *PostgresRepository) Create(ctx context.Context, client *models.AuthorizedClient) (*models.AuthorizedClient, error) {

	query :=
		`INSERT INTO authorised_clients (client_id, user_id, name, website, client_secret)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		client.ClientID, client.UserID, client.Name, client.Website, client.ClientSecret).
		Scan(&client.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return client, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, clientID uuid.UUID) (*models.AuthorizedClient, error) {
	query :=
		`SELECT client_id, user_id, name, website, client_secret, created_at FROM authorised_clients
		 WHERE client_id = $1
		 `

	client := &models.AuthorizedClient{}
	err := r.db.QueryRowContext(ctx, query, clientID).
		Scan(&client.ClientID, &client.UserID, &client.Name, &client.Website,
			&client.ClientSecret, &client.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return client, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.AuthorizedClient, error) {
	query :=
		`SELECT client_id, user_id, name, website, client_secret, created_at FROM authorised_clients
		 WHERE user_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.AuthorizedClient
	for rows.Next() {
		var client models.AuthorizedClient
		if err := rows.Scan(&client.ClientID, &client.UserID, &client.Name, &client.Website,
			&client.ClientSecret, &client.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, clientID uuid.UUID) error {
	query :=
		`DELETE FROM authorised_clients
		 WHERE client_id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, clientID)
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

// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/adhalianna/trackers/internal/dbx"
	"github.com/adhalianna/trackers/internal/server/migrations"
	"github.com/adhalianna/trackers/internal/server/repositories/attachments"
	"github.com/adhalianna/trackers/internal/server/repositories/clients"
	"github.com/adhalianna/trackers/internal/server/repositories/registrations"
	"github.com/adhalianna/trackers/internal/server/repositories/sessions"
	"github.com/adhalianna/trackers/internal/server/repositories/tasks"
	"github.com/adhalianna/trackers/internal/server/repositories/trackers"
	"github.com/adhalianna/trackers/internal/server/repositories/users"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Sessions returns a sessions.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewPostgresRepository(db)
}

// Registrations returns a registrations.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Registrations(db dbx.DBTX) registrations.Repository {
	return registrations.NewPostgresRepository(db)
}

// Trackers returns a trackers.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Trackers(db dbx.DBTX) trackers.Repository {
	return trackers.NewPostgresRepository(db)
}

// Tasks returns a tasks.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Tasks(db dbx.DBTX) tasks.Repository {
	return tasks.NewPostgresRepository(db)
}

// Clients returns a clients.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Clients(db dbx.DBTX) clients.Repository {
	return clients.NewPostgresRepository(db)
}

// Attachments returns an attachments.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Attachments(db dbx.DBTX) attachments.Repository {
	return attachments.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

package repomanager

import (
	"context"
	"database/sql"

	"github.com/adhalianna/trackers/internal/dbx"
	"github.com/adhalianna/trackers/internal/server/repositories/attachments"
	"github.com/adhalianna/trackers/internal/server/repositories/clients"
	"github.com/adhalianna/trackers/internal/server/repositories/registrations"
	"github.com/adhalianna/trackers/internal/server/repositories/sessions"
	"github.com/adhalianna/trackers/internal/server/repositories/tasks"
	"github.com/adhalianna/trackers/internal/server/repositories/trackers"
	"github.com/adhalianna/trackers/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Registrations(db dbx.DBTX) registrations.Repository
	Trackers(db dbx.DBTX) trackers.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	Clients(db dbx.DBTX) clients.Repository
	Attachments(db dbx.DBTX) attachments.Repository
}

package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/adhalianna/trackers/internal/dbx"
	"github.com/adhalianna/trackers/internal/server/models"
	attachmentsrepo "github.com/adhalianna/trackers/internal/server/repositories/attachments"
	clientsrepo "github.com/adhalianna/trackers/internal/server/repositories/clients"
	registrationsrepo "github.com/adhalianna/trackers/internal/server/repositories/registrations"
	sessionsrepo "github.com/adhalianna/trackers/internal/server/repositories/sessions"
	tasksrepo "github.com/adhalianna/trackers/internal/server/repositories/tasks"
	trackersrepo "github.com/adhalianna/trackers/internal/server/repositories/trackers"
	usersrepo "github.com/adhalianna/trackers/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// --- fake repositories ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error
	getOut    *models.User
	getErr    error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}
func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeUsersRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeSessionsRepo struct {
	created    []*models.Session
	createErr  error
	getOut     *models.Session
	getErr     error
	updateErr  error
	deletedN   int64
	deleteErr  error
	updateArgs []string
}

func (f *fakeSessionsRepo) Create(ctx context.Context, s *models.Session) error {
	f.created = append(f.created, s)
	return f.createErr
}
func (f *fakeSessionsRepo) GetByRefreshToken(ctx context.Context, token string) (*models.Session, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeSessionsRepo) UpdateTokens(ctx context.Context, oldRefresh, access, refresh string) error {
	f.updateArgs = []string{oldRefresh, access, refresh}
	return f.updateErr
}
func (f *fakeSessionsRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return f.deletedN, f.deleteErr
}

type fakeRegistrationsRepo struct {
	created   []*models.RegistrationRequest
	createErr error
	getOut    *models.RegistrationRequest
	getErr    error
	deleteErr error
	deletedN  int64
}

func (f *fakeRegistrationsRepo) Create(ctx context.Context, r *models.RegistrationRequest) error {
	f.created = append(f.created, r)
	return f.createErr
}
func (f *fakeRegistrationsRepo) GetByEmail(ctx context.Context, email string) (*models.RegistrationRequest, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeRegistrationsRepo) GetByEmailAndCode(ctx context.Context, email, code string) (*models.RegistrationRequest, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeRegistrationsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return f.deleteErr
}
func (f *fakeRegistrationsRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return f.deletedN, nil
}

type fakeTrackersRepo struct {
	created     []*models.Tracker
	createErr   error
	getOut      *models.Tracker
	getErr      error
	defaultOut  *models.Tracker
	defaultErr  error
	listOut     []models.Tracker
	listErr     error
	updateErr   error
	clearDefErr error
	deleteErr   error
	clearedFor  []uuid.UUID
	lastUpdated *models.Tracker
}

func (f *fakeTrackersRepo) Create(ctx context.Context, tr *models.Tracker) (*models.Tracker, error) {
	f.created = append(f.created, tr)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return tr, nil
}
func (f *fakeTrackersRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tracker, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeTrackersRepo) GetDefaultForUser(ctx context.Context, userID uuid.UUID) (*models.Tracker, error) {
	if f.defaultErr != nil {
		return nil, f.defaultErr
	}
	return f.defaultOut, nil
}
func (f *fakeTrackersRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Tracker, error) {
	return f.listOut, f.listErr
}
func (f *fakeTrackersRepo) Update(ctx context.Context, tr *models.Tracker) (*models.Tracker, error) {
	f.lastUpdated = tr
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return tr, nil
}
func (f *fakeTrackersRepo) ClearDefault(ctx context.Context, userID uuid.UUID) error {
	f.clearedFor = append(f.clearedFor, userID)
	return f.clearDefErr
}
func (f *fakeTrackersRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return f.deleteErr
}

type fakeTasksRepo struct {
	created     []*models.Task
	createErr   error
	getOut      *models.Task
	getErr      error
	listOut     []models.Task
	listErr     error
	updateErr   error
	setErr      error
	setArgs     []any
	ownerOut    uuid.UUID
	ownerErr    error
	deleteErr   error
	lastUpdated *models.Task
}

func (f *fakeTasksRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	f.created = append(f.created, task)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return task, nil
}
func (f *fakeTasksRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeTasksRepo) ListByTracker(ctx context.Context, trackerID uuid.UUID) ([]models.Task, error) {
	return f.listOut, f.listErr
}
func (f *fakeTasksRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Task, error) {
	return f.listOut, f.listErr
}
func (f *fakeTasksRepo) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	f.lastUpdated = task
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return task, nil
}
func (f *fakeTasksRepo) SetCompleted(ctx context.Context, id uuid.UUID, completedAt *time.Time) error {
	f.setArgs = []any{id, completedAt}
	return f.setErr
}
func (f *fakeTasksRepo) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	if f.ownerErr != nil {
		return uuid.Nil, f.ownerErr
	}
	return f.ownerOut, nil
}
func (f *fakeTasksRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return f.deleteErr
}

type fakeClientsRepo struct {
	created   []*models.AuthorizedClient
	createErr error
	getOut    *models.AuthorizedClient
	getErr    error
	listOut   []models.AuthorizedClient
	listErr   error
	deleteErr error
}

func (f *fakeClientsRepo) Create(ctx context.Context, c *models.AuthorizedClient) (*models.AuthorizedClient, error) {
	f.created = append(f.created, c)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return c, nil
}
func (f *fakeClientsRepo) GetByID(ctx context.Context, clientID uuid.UUID) (*models.AuthorizedClient, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeClientsRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.AuthorizedClient, error) {
	return f.listOut, f.listErr
}
func (f *fakeClientsRepo) Delete(ctx context.Context, clientID uuid.UUID) error {
	return f.deleteErr
}

type fakeAttachmentsRepo struct {
	created   []*models.Attachment
	createErr error
	getOut    *models.Attachment
	getErr    error
	listOut   []models.Attachment
	listErr   error
	markErr   error
	deleteErr error
}

func (f *fakeAttachmentsRepo) Create(ctx context.Context, a *models.Attachment) (*models.Attachment, error) {
	f.created = append(f.created, a)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return a, nil
}
func (f *fakeAttachmentsRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Attachment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeAttachmentsRepo) ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.Attachment, error) {
	return f.listOut, f.listErr
}
func (f *fakeAttachmentsRepo) MarkUploaded(ctx context.Context, id uuid.UUID) error {
	return f.markErr
}
func (f *fakeAttachmentsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return f.deleteErr
}

// --- fake repository manager ---

type fakeRepoManager struct {
	u  *fakeUsersRepo
	s  *fakeSessionsRepo
	rg *fakeRegistrationsRepo
	tr *fakeTrackersRepo
	tk *fakeTasksRepo
	c  *fakeClientsRepo
	a  *fakeAttachmentsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository { return m.s }
func (m *fakeRepoManager) Registrations(db dbx.DBTX) registrationsrepo.Repository {
	return m.rg
}
func (m *fakeRepoManager) Trackers(db dbx.DBTX) trackersrepo.Repository { return m.tr }
func (m *fakeRepoManager) Tasks(db dbx.DBTX) tasksrepo.Repository       { return m.tk }
func (m *fakeRepoManager) Clients(db dbx.DBTX) clientsrepo.Repository   { return m.c }
func (m *fakeRepoManager) Attachments(db dbx.DBTX) attachmentsrepo.Repository {
	return m.a
}

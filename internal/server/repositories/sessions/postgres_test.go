package sessions

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/adhalianna/trackers/internal/common"
	"github.com/adhalianna/trackers/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+sessions\s*\(access_token,\s*refresh_token,\s*user_id,\s*started_at,\s*valid_until\)`

	userID := uuid.New()
	now := time.Now()
	mock.ExpectExec(q).
		WithArgs("acc", "ref", userID, now, now.Add(30*time.Minute)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := &models.Session{
		AccessToken:  "acc",
		RefreshToken: "ref",
		UserID:       userID,
		StartedAt:    now,
		ValidUntil:   now.Add(30 * time.Minute),
	}
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestGetByRefreshToken_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+access_token,\s*refresh_token,\s*user_id,\s*started_at,\s*valid_until\s+FROM\s+sessions\s+WHERE\s+refresh_token\s*=\s*\$1`

	userID := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{"access_token", "refresh_token", "user_id", "started_at", "valid_until"}).
		AddRow("acc", "ref", userID, now, now.Add(time.Hour))
	mock.ExpectQuery(q).
		WithArgs("ref").
		WillReturnRows(rows)

	got, err := repo.GetByRefreshToken(context.Background(), "ref")
	if err != nil {
		t.Fatalf("GetByRefreshToken error: %v", err)
	}
	if got.UserID != userID || got.AccessToken != "acc" {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestGetByRefreshToken_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+access_token`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByRefreshToken(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestUpdateTokens_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+sessions\s+SET\s+access_token\s*=\s*\$2,\s*refresh_token\s*=\s*\$3\s+WHERE\s+refresh_token\s*=\s*\$1`

	mock.ExpectExec(q).
		WithArgs("old-ref", "new-acc", "new-ref").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateTokens(context.Background(), "old-ref", "new-acc", "new-ref"); err != nil {
		t.Fatalf("UpdateTokens error: %v", err)
	}
}

func TestUpdateTokens_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^UPDATE\s+sessions`).
		WithArgs("ghost", "new-acc", "new-ref").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateTokens(context.Background(), "ghost", "new-acc", "new-ref")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDeleteExpired(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+sessions\s+WHERE\s+valid_until\s*<\s*\$1`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteExpired(context.Background(), now)
	if err != nil {
		t.Fatalf("DeleteExpired error: %v", err)
	}
	if n != 3 {
		t.Fatalf("unexpected deleted count: %d", n)
	}
}

func TestDeleteExpired_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+sessions`).
		WithArgs(now).
		WillReturnError(errors.New("db down"))

	_, err := repo.DeleteExpired(context.Background(), now)
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/adhalianna/trackers/internal/common"
	"github.com/adhalianna/trackers/internal/server/models"
)

type fakeMailer struct {
	sentTo   []string
	sentCode string
	err      error
}

func (f *fakeMailer) SendConfirmationCode(ctx context.Context, email, code string) error {
	f.sentTo = append(f.sentTo, email)
	f.sentCode = code
	return f.err
}

func TestRegistrationStart_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{
		u:  &fakeUsersRepo{getErr: common.ErrorNotFound},
		rg: &fakeRegistrationsRepo{},
	}
	mailer := &fakeMailer{}
	s := NewRegistrationService(db, rm, mailer)

	if err := s.Start(context.Background(), "alice@example.com", "hunter2!x", true); err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if len(rm.rg.created) != 1 {
		t.Fatalf("registration not stored: %+v", rm.rg.created)
	}
	req := rm.rg.created[0]
	if req.Email != "alice@example.com" || len(req.ConfirmationCode) != 9 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if got := req.ValidUntil.Sub(req.IssuedAt); got != 10*time.Minute {
		t.Fatalf("unexpected validity window: %v", got)
	}
	if len(mailer.sentTo) != 1 || mailer.sentCode != req.ConfirmationCode {
		t.Fatalf("code not mailed: %+v", mailer)
	}
}

func TestRegistrationStart_TermsNotAccepted(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewRegistrationService(db, &fakeRepoManager{}, &fakeMailer{})
	if err := s.Start(context.Background(), "alice@example.com", "hunter2!x", false); !errors.Is(err, common.ErrTermsNotAccepted) {
		t.Fatalf("want ErrTermsNotAccepted, got %v", err)
	}
}

func TestRegistrationStart_EmailTaken(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{
		u: &fakeUsersRepo{getOut: &models.User{ID: uuid.New(), Email: "alice@example.com"}},
	}
	s := NewRegistrationService(db, rm, &fakeMailer{})
	if err := s.Start(context.Background(), "alice@example.com", "hunter2!x", true); !errors.Is(err, common.ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}
}

func TestRegistrationStart_WeakPassword(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewRegistrationService(db, &fakeRepoManager{}, &fakeMailer{})
	if err := s.Start(context.Background(), "alice@example.com", "short", true); !errors.Is(err, models.ErrPasswordTooShort) {
		t.Fatalf("want ErrPasswordTooShort, got %v", err)
	}
}

func TestRegistrationConfirm_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{
		u: &fakeUsersRepo{},
		rg: &fakeRegistrationsRepo{getOut: &models.RegistrationRequest{
			ID:               uuid.New(),
			Email:            "alice@example.com",
			Password:         []byte("hash"),
			ConfirmationCode: "A1B2C3D4E",
			ValidUntil:       time.Now().Add(5 * time.Minute),
		}},
		tr: &fakeTrackersRepo{},
	}
	s := NewRegistrationService(db, rm, &fakeMailer{})

	user, err := s.Confirm(context.Background(), "alice@example.com", "A1B2C3D4E")
	if err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	if user.Email != "alice@example.com" || user.ID == uuid.Nil {
		t.Fatalf("unexpected user: %+v", user)
	}
	if len(rm.tr.created) != 1 || !rm.tr.created[0].IsDefault || rm.tr.created[0].UserID != user.ID {
		t.Fatalf("default tracker not created: %+v", rm.tr.created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestRegistrationConfirm_ExpiredCode(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{
		rg: &fakeRegistrationsRepo{getOut: &models.RegistrationRequest{
			ID:         uuid.New(),
			ValidUntil: time.Now().Add(-time.Minute),
		}},
	}
	s := NewRegistrationService(db, rm, &fakeMailer{})
	if _, err := s.Confirm(context.Background(), "alice@example.com", "A1B2C3D4E"); !errors.Is(err, common.ErrCodeExpired) {
		t.Fatalf("want ErrCodeExpired, got %v", err)
	}
}

func TestRegistrationConfirm_WrongCode(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{rg: &fakeRegistrationsRepo{getErr: common.ErrorNotFound}}
	s := NewRegistrationService(db, rm, &fakeMailer{})
	if _, err := s.Confirm(context.Background(), "alice@example.com", "WRONG"); !errors.Is(err, common.ErrCodeExpired) {
		t.Fatalf("want ErrCodeExpired, got %v", err)
	}
}

func TestRegistrationConfirm_RollbackOnTrackerError(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{
		u: &fakeUsersRepo{},
		rg: &fakeRegistrationsRepo{getOut: &models.RegistrationRequest{
			ID:         uuid.New(),
			Email:      "alice@example.com",
			ValidUntil: time.Now().Add(5 * time.Minute),
		}},
		tr: &fakeTrackersRepo{createErr: errBoom{}},
	}
	s := NewRegistrationService(db, rm, &fakeMailer{})

	if _, err := s.Confirm(context.Background(), "alice@example.com", "A1B2C3D4E"); err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

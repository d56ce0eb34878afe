package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adhalianna/trackers/internal/common"
	"github.com/adhalianna/trackers/internal/dbx"
	"github.com/adhalianna/trackers/internal/server/mail"
	"github.com/adhalianna/trackers/internal/server/models"
	"github.com/adhalianna/trackers/internal/server/repositories/repomanager"
)

// RegistrationService runs the two-step account registration flow: a request
// records the desired account and mails out a confirmation code, a
// confirmation turns the request into a real account.
type RegistrationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	mailer      mail.Sender
}

func NewRegistrationService(db *sql.DB, m repomanager.RepositoryManager, mailer mail.Sender) *RegistrationService {
	return &RegistrationService{
		db:          db,
		repomanager: m,
		mailer:      mailer,
	}
}

// Start validates the requested account, stores a pending registration and
// mails the confirmation code. The terms of service must have been accepted.
func (s *RegistrationService) Start(ctx context.Context, email, password string, tosAccepted bool) error {
	if !tosAccepted {
		return common.ErrTermsNotAccepted
	}
	if err := models.ValidatePassword(password); err != nil {
		return err
	}

	if _, err := s.repomanager.Users(s.db).GetByEmail(ctx, email); err == nil {
		return common.ErrEmailTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return common.ErrorInternal
	}

	hash, err := models.HashPassword(password)
	if err != nil {
		return common.ErrorInternal
	}
	code, err := models.NewConfirmationCode()
	if err != nil {
		return common.ErrorInternal
	}

	id, err := uuid.NewV7()
	if err != nil {
		return common.ErrorInternal
	}

	now := time.Now()
	request := &models.RegistrationRequest{
		ID:               id,
		Email:            email,
		Password:         hash,
		ConfirmationCode: code,
		IssuedAt:         now,
		ValidUntil:       now.Add(models.ConfirmationCodeValidity),
	}
	if err := s.repomanager.Registrations(s.db).Create(ctx, request); err != nil {
		return common.ErrorInternal
	}

	if err := s.mailer.SendConfirmationCode(ctx, email, code); err != nil {
		return fmt.Errorf("error sending confirmation code: %v", err)
	}

	return nil
}

// Pending returns the most recent pending registration for an email address.
func (s *RegistrationService) Pending(ctx context.Context, email string) (*models.RegistrationRequest, error) {
	request, err := s.repomanager.Registrations(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return request, nil
}

// Confirm finalizes a pending registration. The new account gets a default
// tracker so tasks created without an explicit tracker have somewhere to go.
// The whole step runs in one transaction; a failure leaves the pending
// request in place.
func (s *RegistrationService) Confirm(ctx context.Context, email, code string) (*models.User, error) {
	request, err := s.repomanager.Registrations(s.db).GetByEmailAndCode(ctx, email, code)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrCodeExpired
		}
		return nil, common.ErrorInternal
	}
	if request.ValidUntil.Before(time.Now()) {
		return nil, common.ErrCodeExpired
	}

	userID, err := uuid.NewV7()
	if err != nil {
		return nil, common.ErrorInternal
	}
	trackerID, err := uuid.NewV7()
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{ID: userID, Email: request.Email, Password: request.Password}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).Create(ctx, user); err != nil {
			return err
		}
		tracker := &models.Tracker{ID: trackerID, UserID: userID, Name: "default", IsDefault: true}
		if _, err := s.repomanager.Trackers(tx).Create(ctx, tracker); err != nil {
			return err
		}
		return s.repomanager.Registrations(tx).Delete(ctx, request.ID)
	}); err != nil {
		return nil, fmt.Errorf("error confirming registration: %v", err)
	}

	return user, nil
}

// CleanupExpired drops pending registrations whose confirmation window has
// passed.
func (s *RegistrationService) CleanupExpired(ctx context.Context) (int64, error) {
	n, err := s.repomanager.Registrations(s.db).DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("error cleaning up registrations: %v", err)
	}
	return n, nil
}

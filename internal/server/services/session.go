// Package services contains server-side business logic. This file implements
// SessionService, which handles the password, refresh_token and
// client_credentials grants and the session housekeeping around them.
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
	"github.com/adhalianna/trackers/internal/server/auth"
	"github.com/adhalianna/trackers/internal/server/auth/scope"
	"github.com/adhalianna/trackers/internal/server/config"
	"github.com/adhalianna/trackers/internal/server/models"
	"github.com/adhalianna/trackers/internal/server/repositories/repomanager"
)

// Grant is the successful outcome of any token grant. RefreshToken is empty
// for client_credentials sessions, which cannot be refreshed.
type Grant struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// SessionService provides token grant operations:
//   - PasswordGrant: verify user credentials and open a refreshable session
//   - RefreshGrant: rotate the token pair of an existing session
//   - ClientCredentialsGrant: authenticate a machine client
type SessionService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	codec                        *auth.Codec
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewSessionService constructs a SessionService using repositories, the
// claims codec and server config.
func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, codec *auth.Codec, cfg *config.Config) *SessionService {
	return &SessionService{
		db:                           db,
		repomanager:                  m,
		codec:                        codec,
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// ownershipScope is the capability granted to a session acting on behalf of
// the given user.
func ownershipScope(userID uuid.UUID) scope.Scope {
	return scope.Scope{scope.Produce(scope.UserResources{}, userID)}
}

// PasswordGrant verifies the email/password pair and opens a new session.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *SessionService) PasswordGrant(ctx context.Context, email, password string) (*Grant, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrBadCredentials
		}
		return nil, common.ErrorInternal
	}
	if !models.VerifyPassword(user.Password, password) {
		return nil, common.ErrBadCredentials
	}

	return s.openSession(ctx, user.ID, true)
}

// ClientCredentialsGrant authenticates a machine client and opens a
// non-refreshable session scoped to the owning user's resources.
func (s *SessionService) ClientCredentialsGrant(ctx context.Context, clientID uuid.UUID, clientSecret string) (*Grant, error) {
	repo := s.repomanager.Clients(s.db)

	client, err := repo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrBadClientCredentials
		}
		return nil, common.ErrorInternal
	}
	if !models.VerifyPassword(client.ClientSecret, clientSecret) {
		return nil, common.ErrBadClientCredentials
	}

	return s.openSession(ctx, client.UserID, false)
}

// RefreshGrant rotates the token pair of the session owning the refresh
// token. The session window stays as it was set when the session was opened;
// once it passes, the session can no longer be refreshed.
func (s *SessionService) RefreshGrant(ctx context.Context, refreshToken string) (*Grant, error) {
	repo := s.repomanager.Sessions(s.db)

	session, err := repo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrSessionExpired
		}
		return nil, common.ErrorInternal
	}
	if session.ValidUntil.Before(time.Now()) {
		return nil, common.ErrSessionExpired
	}

	access, err := s.codec.Issue(s.accessTokenValidityDuration, ownershipScope(session.UserID))
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Sessions(tx).UpdateTokens(ctx, refreshToken, access, refresh)
	}); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrSessionExpired
		}
		return nil, common.ErrorInternal
	}

	return &Grant{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessTokenValidityDuration.Seconds()),
	}, nil
}

// CleanupExpired removes sessions whose window has fully passed. Meant to be
// called periodically from a background loop.
func (s *SessionService) CleanupExpired(ctx context.Context) (int64, error) {
	n, err := s.repomanager.Sessions(s.db).DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("error cleaning up sessions: %v", err)
	}
	return n, nil
}

// generateRefreshToken mints a refresh token through the same issuer as
// access tokens, with an empty scope set. Presenting it authorizes nothing
// by itself; a refresh still goes through the session row lookup.
func (s *SessionService) generateRefreshToken() (string, error) {
	return s.codec.Issue(s.refreshTokenValidityDuration, scope.Scope{})
}

func (s *SessionService) openSession(ctx context.Context, userID uuid.UUID, refreshable bool) (*Grant, error) {
	access, err := s.codec.Issue(s.accessTokenValidityDuration, ownershipScope(userID))
	if err != nil {
		return nil, common.ErrorInternal
	}

	var refresh string
	if refreshable {
		if refresh, err = s.generateRefreshToken(); err != nil {
			return nil, common.ErrorInternal
		}
	}

	now := time.Now()
	session := &models.Session{
		UserID:       userID,
		AccessToken:  access,
		RefreshToken: refresh,
		StartedAt:    now,
		ValidUntil:   now.Add(s.refreshTokenValidityDuration),
	}
	if err := s.repomanager.Sessions(s.db).Create(ctx, session); err != nil {
		return nil, common.ErrorInternal
	}

	return &Grant{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessTokenValidityDuration.Seconds()),
	}, nil
}

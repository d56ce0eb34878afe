// Package common defines shared constants and sentinel errors used across
// the tracke.rs server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal  = errors.New("internal error")
	ErrorForbidden = errors.New("forbidden")
	ErrorConflict  = errors.New("conflict")

	// Credential errors. Deliberately coarse so that responses built from
	// them cannot be used for account enumeration.
	ErrBadCredentials       = errors.New("email or password not correct")
	ErrBadClientCredentials = errors.New("client_id or client_secret is invalid")

	// Session lifecycle errors.
	ErrSessionExpired = errors.New("the session can no longer be refreshed")

	// Registration errors.
	ErrEmailTaken       = errors.New("email already taken by another account")
	ErrTermsNotAccepted = errors.New("terms of service must be accepted for a user to create an account")
	ErrCodeExpired      = errors.New("confirmation code expired or invalid")

	// Ownership errors. The messages surface directly in API responses.
	ErrNoTrackerAccess     = errors.New("no access to the selected tracker")
	ErrNoTaskTrackerAccess = errors.New("no access to the selected task tracker")
	ErrTrackerForOtherUser = errors.New("cannot add trackers for such user from current session")
	ErrNoSuchTracker       = errors.New("no such tracker exists, create one with a POST request")
	ErrTrackerIDMismatch   = errors.New("tracker id provided in path parameters and body fields are mismatching")
	ErrSessionUserMismatch = errors.New("session does not match the user_id provided in the payload")
)

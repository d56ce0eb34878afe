// Package httpapi exposes the REST surface of the task tracker: routing,
// middleware, request handlers and the error body convention shared by all
// endpoints.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adhalianna/trackers/internal/common"
	"github.com/adhalianna/trackers/internal/server/auth"
	"github.com/adhalianna/trackers/internal/server/auth/scope"
	"github.com/adhalianna/trackers/internal/server/models"
)

const (
	docPath     = "/doc"
	newSession  = "/api/session/token"
	newTracker  = "/api/tracker"
	msgBadToken = "authorization token is missing or malformed"
	msgInternal = "internal server error"
	msgBadInput = "request body is missing or malformed"
)

// ErrorBody is the JSON error payload returned by every endpoint. Links, when
// present, point the caller at remediation resources.
type ErrorBody struct {
	Status int               `json:"status"`
	Msg    string            `json:"msg"`
	Links  map[string]string `json:"links,omitempty"`
}

func newErrorBody(status int, msg string) *ErrorBody {
	return &ErrorBody{Status: status, Msg: msg}
}

// WithLink attaches a named remediation link.
func (b *ErrorBody) WithLink(name, target string) *ErrorBody {
	if b.Links == nil {
		b.Links = map[string]string{}
	}
	b.Links[name] = target
	return b
}

// WithDocs attaches the documentation link.
func (b *ErrorBody) WithDocs() *ErrorBody {
	return b.WithLink("documentation", docPath)
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the error body with its own status.
func writeError(w http.ResponseWriter, body *ErrorBody) {
	writeJSON(w, body.Status, body)
}

func unauthorizedBody(msg string) *ErrorBody {
	return newErrorBody(http.StatusUnauthorized, msg).
		WithLink("new session", newSession).
		WithDocs()
}

func isPasswordError(err error) bool {
	return errors.Is(err, models.ErrPasswordTooShort) ||
		errors.Is(err, models.ErrPasswordNoLetter) ||
		errors.Is(err, models.ErrPasswordNoDigit) ||
		errors.Is(err, models.ErrPasswordNoSpecial) ||
		errors.Is(err, models.ErrPasswordControlChars)
}

// errorBodyFor maps service and auth errors onto the wire convention.
func errorBodyFor(err error) *ErrorBody {
	switch {
	case errors.Is(err, common.ErrBadCredentials),
		errors.Is(err, common.ErrBadClientCredentials),
		errors.Is(err, common.ErrSessionExpired):
		return unauthorizedBody(err.Error())

	case errors.Is(err, auth.ErrBadSignature),
		errors.Is(err, auth.ErrNoMatchingKey),
		errors.Is(err, auth.ErrBadIssuer),
		errors.Is(err, auth.ErrBadAudience),
		errors.Is(err, auth.ErrExpired),
		errors.Is(err, auth.ErrMalformed):
		return unauthorizedBody(msgBadToken)

	case errors.Is(err, scope.ErrInsufficientScope),
		errors.Is(err, common.ErrorForbidden),
		errors.Is(err, common.ErrNoTrackerAccess),
		errors.Is(err, common.ErrNoTaskTrackerAccess),
		errors.Is(err, common.ErrTrackerForOtherUser),
		errors.Is(err, common.ErrSessionUserMismatch):
		return newErrorBody(http.StatusForbidden, err.Error()).WithDocs()

	case errors.Is(err, common.ErrNoSuchTracker):
		return newErrorBody(http.StatusConflict, err.Error()).
			WithLink("new tracker", newTracker).
			WithDocs()

	case errors.Is(err, common.ErrTrackerIDMismatch),
		errors.Is(err, common.ErrEmailTaken),
		errors.Is(err, common.ErrorConflict),
		errors.Is(err, common.ErrorAlreadyExists):
		return newErrorBody(http.StatusConflict, err.Error()).WithDocs()

	case errors.Is(err, common.ErrTermsNotAccepted),
		errors.Is(err, common.ErrCodeExpired),
		isPasswordError(err):
		return newErrorBody(http.StatusBadRequest, err.Error()).WithDocs()

	case errors.Is(err, common.ErrorNotFound):
		return newErrorBody(http.StatusNotFound, "not found").WithDocs()

	default:
		return newErrorBody(http.StatusInternalServerError, msgInternal).WithDocs()
	}
}

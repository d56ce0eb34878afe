package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/adhalianna/trackers/internal/common"
	"github.com/adhalianna/trackers/internal/server/services"
)

// tokenResponse is the body of a successful grant.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// handleSession redirects legacy clients posting to /api/session.
func (a *API) handleSession(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, newSession, http.StatusPermanentRedirect)
}

// handleToken runs one of the three supported grants, selected by the
// grant_type form field.
func (a *API) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}

	var (
		grant *services.Grant
		err   error
	)
	switch r.PostFormValue("grant_type") {
	case "password":
		grant, err = a.sessions.PasswordGrant(r.Context(),
			r.PostFormValue("email"), r.PostFormValue("password"))

	case "refresh_token":
		grant, err = a.sessions.RefreshGrant(r.Context(),
			r.PostFormValue("refresh_token"))

	case "client_credentials":
		var clientID uuid.UUID
		clientID, err = uuid.Parse(r.PostFormValue("client_id"))
		if err != nil {
			writeError(w, errorBodyFor(common.ErrBadClientCredentials))
			return
		}
		grant, err = a.sessions.ClientCredentialsGrant(r.Context(),
			clientID, r.PostFormValue("client_secret"))

	default:
		writeError(w, newErrorBody(http.StatusBadRequest, "unsupported grant_type").WithDocs())
		return
	}
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken:  grant.AccessToken,
		TokenType:    "bearer",
		ExpiresIn:    grant.ExpiresIn,
		RefreshToken: grant.RefreshToken,
	})
}

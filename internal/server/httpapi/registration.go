package httpapi

import (
	"net/http"
	"time"
)

type registrationInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	TosAccepted bool   `json:"tos_accepted"`
}

// registrationView is the public shape of a pending registration. The
// confirmation code never leaves through the API, only through mail.
type registrationView struct {
	Email      string            `json:"email"`
	IssuedAt   time.Time         `json:"issued_at"`
	ValidUntil time.Time         `json:"valid_until"`
	Links      map[string]string `json:"links"`
}

type confirmationInput struct {
	ConfirmationCode string `json:"confirmation_code"`
}

func registrationPath(email string) string {
	return "/api/registration-request/" + email
}

// handleCreateUser starts the registration flow. The account only comes into
// existence once the mailed code is confirmed.
func (a *API) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var input registrationInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}

	if err := a.registrations.Start(r.Context(), input.Email, input.Password, input.TosAccepted); err != nil {
		writeError(w, errorBodyFor(err))
		return
	}

	w.Header().Set("Location", registrationPath(input.Email))
	writeJSON(w, http.StatusAccepted, map[string]string{
		"email": input.Email,
		"msg":   "confirmation code sent",
	})
}

// handleGetRegistration returns the pending registration for an email.
func (a *API) handleGetRegistration(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")
	request, err := a.registrations.Pending(r.Context(), email)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}

	writeJSON(w, http.StatusOK, registrationView{
		Email:      request.Email,
		IssuedAt:   request.IssuedAt,
		ValidUntil: request.ValidUntil,
		Links: map[string]string{
			"confirm": registrationPath(email) + "/code",
		},
	})
}

// handleConfirmRegistration finalizes a registration with the mailed code.
func (a *API) handleConfirmRegistration(w http.ResponseWriter, r *http.Request) {
	var input confirmationInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}

	user, err := a.registrations.Confirm(r.Context(), r.PathValue("email"), input.ConfirmationCode)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

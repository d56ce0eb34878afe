package httpapi

import (
	"net/http"

	"github.com/adhalianna/trackers/internal/server/models"
)

// clientWithSecret is the registration response. The secret is shown exactly
// once; afterwards only its hash exists.
type clientWithSecret struct {
	models.AuthorizedClient
	ClientSecret string `json:"client_secret"`
}

// handleListClients lists the machine clients of the user named in the path.
func (a *API) handleListClients(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.resolvePathUser(w, r)
	if !ok {
		return
	}

	clients, err := a.clients.ListForUser(r.Context(), caller, caller)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

// handleRegisterClient registers a machine client for the user named in the
// path and returns the generated secret.
func (a *API) handleRegisterClient(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.resolvePathUser(w, r)
	if !ok {
		return
	}

	var input models.AuthorizedClientInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}

	client, secret, err := a.clients.Register(r.Context(), caller, input)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}

	writeJSON(w, http.StatusCreated, clientWithSecret{
		AuthorizedClient: *client,
		ClientSecret:     secret,
	})
}

func (a *API) handleGetClient(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.resolvePathUser(w, r)
	if !ok {
		return
	}
	clientID, ok := pathUUID(r, "client_id")
	if !ok {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}

	client, err := a.clients.Get(r.Context(), caller, clientID)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (a *API) handleRevokeClient(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.resolvePathUser(w, r)
	if !ok {
		return
	}
	clientID, ok := pathUUID(r, "client_id")
	if !ok {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}

	if err := a.clients.Revoke(r.Context(), caller, clientID); err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/adhalianna/trackers/internal/logging"
	"github.com/adhalianna/trackers/internal/server/auth"
	"github.com/adhalianna/trackers/internal/server/auth/scope"
	"github.com/adhalianna/trackers/internal/server/services"
)

// API wires the services to the HTTP surface.
type API struct {
	logger logging.Logger
	codec  *auth.Codec
	realm  string

	sessions      *services.SessionService
	registrations *services.RegistrationService
	trackers      *services.TrackerService
	tasks         *services.TaskService
	clients       *services.ClientService
	attachments   *services.AttachmentService
	users         *services.UserService
}

// Services groups the dependencies of the API.
type Services struct {
	Sessions      *services.SessionService
	Registrations *services.RegistrationService
	Trackers      *services.TrackerService
	Tasks         *services.TaskService
	Clients       *services.ClientService
	Attachments   *services.AttachmentService
	Users         *services.UserService
}

func NewAPI(logger logging.Logger, codec *auth.Codec, realm string, svc Services) *API {
	return &API{
		logger:        logger,
		codec:         codec,
		realm:         realm,
		sessions:      svc.Sessions,
		registrations: svc.Registrations,
		trackers:      svc.Trackers,
		tasks:         svc.Tasks,
		clients:       svc.Clients,
		attachments:   svc.Attachments,
		users:         svc.Users,
	}
}

// callerID extracts the user identity the session is authorized to act as.
// A session without the user resources capability cannot touch any resource.
func callerID(r *http.Request) (uuid.UUID, error) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		return uuid.Nil, auth.ErrMalformed
	}
	return scope.ExtractVariable(claims.Scope, scope.UserResources{})
}

// decodeBody decodes the request body into v, rejecting unknown fields.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// pathUUID parses a UUID path parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	return id, err == nil
}

// resolvePathUser turns the {email} path parameter into a user and checks it
// against the session's capability.
func (a *API) resolvePathUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return uuid.Nil, false
	}
	user, err := a.users.GetByEmail(r.Context(), r.PathValue("email"))
	if err != nil {
		writeError(w, errorBodyFor(err))
		return uuid.Nil, false
	}
	if user.ID != caller {
		writeError(w, errorBodyFor(scope.ErrInsufficientScope))
		return uuid.Nil, false
	}
	return caller, true
}

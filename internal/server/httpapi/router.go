package httpapi

import "net/http"

// Router assembles the full route table. The session, user-creation and
// registration endpoints are open; everything else sits behind the bearer
// token middleware.
func (a *API) Router() http.Handler {
	public := http.NewServeMux()
	public.HandleFunc("POST /api/session", a.handleSession)
	public.HandleFunc("POST /api/session/token", a.handleToken)
	public.HandleFunc("POST /api/users", a.handleCreateUser)
	public.HandleFunc("GET /api/registration-request/{email}", a.handleGetRegistration)
	public.HandleFunc("POST /api/registration-request/{email}/code", a.handleConfirmRegistration)

	protected := http.NewServeMux()
	protected.HandleFunc("POST /api/tracker", a.handleCreateTracker)
	protected.HandleFunc("GET /api/tracker/{tracker_id}", a.handleGetTracker)
	protected.HandleFunc("PUT /api/tracker/{tracker_id}", a.handleUpdateTracker)
	protected.HandleFunc("PATCH /api/tracker/{tracker_id}", a.handleUpdateTracker)
	protected.HandleFunc("DELETE /api/tracker/{tracker_id}", a.handleDeleteTracker)
	protected.HandleFunc("GET /api/tracker/{tracker_id}/tasks", a.handleListTrackerTasks)
	protected.HandleFunc("POST /api/tracker/{tracker_id}/tasks", a.handleCreateTrackerTask)

	protected.HandleFunc("POST /api/task", a.handleCreateTask)
	protected.HandleFunc("GET /api/task/{task_id}", a.handleGetTask)
	protected.HandleFunc("PUT /api/task/{task_id}", a.handleUpdateTask)
	protected.HandleFunc("DELETE /api/task/{task_id}", a.handleDeleteTask)
	protected.HandleFunc("POST /api/task/{task_id}/checkmark", a.handleCheckmark)
	protected.HandleFunc("PUT /api/task/{task_id}/checkmark", a.handleCheckmark)
	protected.HandleFunc("DELETE /api/task/{task_id}/checkmark", a.handleCheckmark)

	protected.HandleFunc("POST /api/task/{task_id}/attachments", a.handleAttach)
	protected.HandleFunc("GET /api/task/{task_id}/attachments", a.handleListAttachments)
	protected.HandleFunc("GET /api/task/{task_id}/attachment/{attachment_id}", a.handleDownloadAttachment)
	protected.HandleFunc("POST /api/task/{task_id}/attachment/{attachment_id}/uploaded", a.handleMarkUploaded)
	protected.HandleFunc("DELETE /api/task/{task_id}/attachment/{attachment_id}", a.handleDeleteAttachment)

	protected.HandleFunc("GET /api/user/{email}/trackers", a.handleListUserTrackers)
	protected.HandleFunc("GET /api/user/{email}/tasks", a.handleListUserTasks)
	protected.HandleFunc("GET /api/user/{email}/authorised_clients", a.handleListClients)
	protected.HandleFunc("POST /api/user/{email}/authorised_clients", a.handleRegisterClient)
	protected.HandleFunc("GET /api/user/{email}/authorised_client/{client_id}", a.handleGetClient)
	protected.HandleFunc("DELETE /api/user/{email}/authorised_client/{client_id}", a.handleRevokeClient)

	root := http.NewServeMux()
	root.Handle("/api/session", public)
	root.Handle("/api/session/", public)
	root.Handle("/api/users", public)
	root.Handle("/api/registration-request/", public)
	root.Handle("/", chain(protected, authMiddleware(a.codec)))

	return chain(root,
		realmMiddleware(a.realm),
		loggingMiddleware(a.logger),
		recoveryMiddleware(a.logger),
	)
}

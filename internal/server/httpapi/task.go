package httpapi

import (
	"net/http"

	"github.com/adhalianna/trackers/internal/server/models"
)

// handleCreateTask creates a task; without a tracker id in the body the task
// lands in the caller's default tracker.
func (a *API) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}

	var input models.TaskInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}

	task, err := a.tasks.Create(r.Context(), caller, input)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}

	w.Header().Set("Location", "/api/task/"+task.ID.String())
	writeJSON(w, http.StatusCreated, task)
}

func (a *API) handleGetTask(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	taskID, ok := pathUUID(r, "task_id")
	if !ok {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}

	task, err := a.tasks.Get(r.Context(), caller, taskID)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (a *API) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	taskID, ok := pathUUID(r, "task_id")
	if !ok {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}

	var input models.TaskInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}

	task, err := a.tasks.Update(r.Context(), caller, taskID, input)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (a *API) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	taskID, ok := pathUUID(r, "task_id")
	if !ok {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}

	if err := a.tasks.Delete(r.Context(), caller, taskID); err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCheckmark completes (POST, PUT) or uncompletes (DELETE) a task. The
// Location header points back at the task resource.
func (a *API) handleCheckmark(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	taskID, ok := pathUUID(r, "task_id")
	if !ok {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}

	task, err := a.tasks.Checkmark(r.Context(), caller, taskID, r.Method != http.MethodDelete)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}

	w.Header().Set("Location", "/api/task/"+task.ID.String())
	writeJSON(w, http.StatusOK, task)
}

// handleListUserTasks lists all tasks across the trackers of the user named
// in the path.
func (a *API) handleListUserTasks(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.resolvePathUser(w, r)
	if !ok {
		return
	}

	tasks, err := a.tasks.ListForUser(r.Context(), caller, caller)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

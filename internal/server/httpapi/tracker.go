package httpapi

import (
	"net/http"

	"github.com/adhalianna/trackers/internal/common"
	"github.com/adhalianna/trackers/internal/server/models"
)

// handleCreateTracker creates a tracker for the calling user.
func (a *API) handleCreateTracker(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}

	var input models.TrackerInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}

	tracker, err := a.trackers.Create(r.Context(), caller, input)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}

	w.Header().Set("Location", "/api/tracker/"+tracker.ID.String())
	writeJSON(w, http.StatusCreated, tracker)
}

func (a *API) handleGetTracker(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	trackerID, ok := pathUUID(r, "tracker_id")
	if !ok {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}

	tracker, err := a.trackers.Get(r.Context(), caller, trackerID)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	writeJSON(w, http.StatusOK, tracker)
}

// handleUpdateTracker serves both PUT and PATCH; absent fields keep their
// stored values.
func (a *API) handleUpdateTracker(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	trackerID, ok := pathUUID(r, "tracker_id")
	if !ok {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}

	var patch models.TrackerPatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}

	tracker, err := a.trackers.Update(r.Context(), caller, trackerID, patch)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	writeJSON(w, http.StatusOK, tracker)
}

func (a *API) handleDeleteTracker(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	trackerID, ok := pathUUID(r, "tracker_id")
	if !ok {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}

	if err := a.trackers.Delete(r.Context(), caller, trackerID); err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListTrackerTasks lists the tasks of one tracker.
func (a *API) handleListTrackerTasks(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	trackerID, ok := pathUUID(r, "tracker_id")
	if !ok {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}

	tasks, err := a.tasks.ListForTracker(r.Context(), caller, trackerID)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// handleCreateTrackerTask creates a task directly under a tracker; the path
// parameter wins over an absent body tracker id, a conflicting one is
// rejected.
func (a *API) handleCreateTrackerTask(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	trackerID, ok := pathUUID(r, "tracker_id")
	if !ok {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}

	var input models.TaskInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}
	if input.TrackerID != nil && *input.TrackerID != trackerID {
		writeError(w, errorBodyFor(common.ErrTrackerIDMismatch))
		return
	}
	input.TrackerID = &trackerID

	task, err := a.tasks.Create(r.Context(), caller, input)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}

	w.Header().Set("Location", "/api/task/"+task.ID.String())
	writeJSON(w, http.StatusCreated, task)
}

// handleListUserTrackers lists all trackers of the user named in the path.
func (a *API) handleListUserTrackers(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.resolvePathUser(w, r)
	if !ok {
		return
	}

	trackers, err := a.trackers.ListForUser(r.Context(), caller, caller)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	writeJSON(w, http.StatusOK, trackers)
}

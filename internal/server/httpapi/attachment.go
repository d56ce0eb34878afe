package httpapi

import (
	"net/http"

	"github.com/adhalianna/trackers/internal/server/models"
)

type attachmentInput struct {
	FileName string `json:"file_name"`
}

// attachmentWithURL pairs an attachment with a short-lived presigned URL for
// the transfer the caller asked for.
type attachmentWithURL struct {
	models.Attachment
	URL string `json:"url"`
}

// handleAttach registers a file attachment on a task and returns a presigned
// PUT URL for the upload.
func (a *API) handleAttach(w http.ResponseWriter, r *http.Request) {
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

	var input attachmentInput
	if err := decodeBody(r, &input); err != nil || input.FileName == "" {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}

	attachment, uploadURL, err := a.attachments.Attach(r.Context(), caller, taskID, input.FileName)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}

	writeJSON(w, http.StatusCreated, attachmentWithURL{
		Attachment: *attachment,
		URL:        uploadURL,
	})
}

// handleListAttachments lists the attachments registered on a task.
func (a *API) handleListAttachments(w http.ResponseWriter, r *http.Request) {
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

	attachments, err := a.attachments.ListForTask(r.Context(), caller, taskID)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	writeJSON(w, http.StatusOK, attachments)
}

// handleMarkUploaded confirms that the client finished the presigned upload.
func (a *API) handleMarkUploaded(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	attachmentID, ok := pathUUID(r, "attachment_id")
	if !ok {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}

	if err := a.attachments.MarkUploaded(r.Context(), caller, attachmentID); err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDownloadAttachment returns a presigned GET URL for the stored file.
func (a *API) handleDownloadAttachment(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	attachmentID, ok := pathUUID(r, "attachment_id")
	if !ok {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}

	url, err := a.attachments.DownloadURL(r.Context(), caller, attachmentID)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// handleDeleteAttachment drops an attachment record.
func (a *API) handleDeleteAttachment(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	attachmentID, ok := pathUUID(r, "attachment_id")
	if !ok {
		writeError(w, newErrorBody(http.StatusBadRequest, msgBadInput).WithDocs())
		return
	}

	if err := a.attachments.Delete(r.Context(), caller, attachmentID); err != nil {
		writeError(w, errorBodyFor(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

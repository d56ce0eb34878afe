package models

import (
	"time"

	"github.com/google/uuid"
)

// UploadStatus tracks whether an attachment's object has been confirmed in
// storage after the client performed the presigned upload.
type UploadStatus string

const (
	UploadStatusPending  UploadStatus = "pending"
	UploadStatusUploaded UploadStatus = "uploaded"
)

// Attachment is a file associated with a task. The file body lives in object
// storage under StorageKey; the database keeps only the metadata.
type Attachment struct {
	ID         uuid.UUID    `json:"attachment_id"`
	TaskID     uuid.UUID    `json:"task_id"`
	FileName   string       `json:"file_name"`
	StorageKey string       `json:"-"`
	Status     UploadStatus `json:"upload_status"`
	CreatedAt  time.Time    `json:"created_at"`
}

package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// RecordUploadRequest registers an object uploaded directly to storage.
type RecordUploadRequest struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

func (r RecordUploadRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.URL, validation.Required.Error("url is required"), is.URL, validation.Length(1, 2048)),
		validation.Field(&r.Key, validation.Required.Error("key is required"), validation.Length(1, 512)),
	)
}

type ImageResponse struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	Linked    bool      `json:"linked"`
	CreatedAt time.Time `json:"created_at"`
}

// SweepResult summarises one sweep run.
type SweepResult struct {
	Scanned int   `json:"scanned"`
	Deleted int64 `json:"deleted"`
	Batches int   `json:"batches"`
}

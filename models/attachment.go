package models

import (
	"time"

	"github.com/google/uuid"
)

// Attachment kinds.
const (
	KindPhoto    = "photo"
	KindDocument = "document"
)

// Attachment is a reference to a file already persisted against a log.
type Attachment struct {
	ID          uuid.UUID `json:"id"`
	LogID       uuid.UUID `json:"log_id"`
	Kind        string    `json:"kind"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}

// PhotoFile is a binary image selected for upload but not yet sent.
type PhotoFile struct {
	Name        string
	ContentType string
	Data        []byte
}

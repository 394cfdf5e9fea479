package editor

import (
	"errors"
	"fmt"

	"dailylog/validation"
)

var (
	// ErrNotReady is returned when an edit or submission arrives while no draft is editable.
	ErrNotReady = errors.New("editor: draft is not ready")
	// ErrNoPendingUpload is returned by RetryUpload when there is nothing to resend.
	ErrNoPendingUpload = errors.New("editor: no pending photo upload")
	// ErrLogMissing is the LoadError cause when the log store returns no record and no error.
	ErrLogMissing = errors.New("editor: log not found")
	// ErrNoCatalog is the LoadError cause when a selectable project has no catalog to list from.
	ErrNoCatalog = errors.New("editor: selectable project requires a project catalog")
)

// LoadError means the log or the project catalog could not be fetched. The session
// cannot continue; no draft exists.
type LoadError struct {
	LogID string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load log %s: %v", e.LogID, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ValidationError lists the fields that blocked a submission. Nothing was sent.
type ValidationError struct {
	Errors validation.Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %v", e.Errors.Fields())
}

// UpdateError means the metadata update was rejected. No photos were uploaded and the
// draft is unchanged.
type UpdateError struct {
	LogID string
	Err   error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("failed to update log %s: %v", e.LogID, e.Err)
}

func (e *UpdateError) Unwrap() error { return e.Err }

// UploadError means the metadata update was committed but the photos were not.
// The update is not rolled back; the pending photos stay on the draft for RetryUpload.
type UploadError struct {
	LogID  string
	Photos int
	Err    error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("log %s was updated but %d photo(s) failed to upload: %v", e.LogID, e.Photos, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// internal/catalogerr/errors.go
package catalogerr

import (
	"errors"
	"fmt"
)

// ValidationError means operator input failed a local precondition. Fixed by
// correcting the input; nothing was written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError means a uniqueness or reference precondition failed against
// persisted state. The conflicting entity is named so the operator can change
// input rather than retry.
type ConflictError struct {
	Resource string
	Value    string
	Message  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Resource, e.Value, e.Message)
}

func Conflict(resource, value, message string) error {
	return &ConflictError{Resource: resource, Value: value, Message: message}
}

// DependencyError means a persistence or blob-store call failed or was
// inconclusive. Safe to retry; for uniqueness checks it blocks the write
// instead of assuming availability.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

func Dependency(op string, err error) error {
	return &DependencyError{Op: op, Err: err}
}

// PartialUploadError means one or more images in a multi-image commit failed.
// The whole write is aborted; Failed names the staged images that errored.
type PartialUploadError struct {
	Failed []string
	Err    error
}

func (e *PartialUploadError) Error() string {
	return fmt.Sprintf("image upload failed for %v: %v", e.Failed, e.Err)
}

func (e *PartialUploadError) Unwrap() error { return e.Err }

// Classification helpers used by handlers and the write state machine.

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsDependency(err error) bool {
	var de *DependencyError
	return errors.As(err, &de)
}

func IsPartialUpload(err error) bool {
	var pe *PartialUploadError
	return errors.As(err, &pe)
}

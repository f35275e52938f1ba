package rating

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when a submission or listing has no caller identity.
var ErrUnauthenticated = errors.New("rating: caller not authenticated")

// ValidationError reports a missing or out-of-range input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("rating: invalid %s: %s", e.Field, e.Message)
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("rating: %s %d not found", e.Resource, e.ID)
}

// InternalError wraps a storage or unexpected failure. Op names the
// operation that failed; the cause is kept for logging only.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("rating: %s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

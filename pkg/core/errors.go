package core

import "errors"

// Common errors.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("note not found")
	ErrAuth       = errors.New("not authenticated")
	ErrNetwork    = errors.New("network failure")

	// ErrBusy is returned when an operation is issued while the same
	// control still has a request in flight.
	ErrBusy = errors.New("operation already pending")
)

// ValidationError describes why a draft cannot be saved.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is makes ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyInput indicates the question was empty after trimming.
	// It is user-visible and never changes controller state.
	ErrEmptyInput = errors.New("question is empty")

	// ErrTransport indicates the answering service could not be reached
	// or replied with a non-2xx status. Retryable by resubmission.
	ErrTransport = errors.New("transport failure")

	// ErrStorage indicates the durable history store failed.
	// Storage errors are logged, never surfaced to the interactive flow.
	ErrStorage = errors.New("storage failure")

	// ErrNotReplayable indicates an action that only applies to interactive
	// queries was requested for a persisted artifact entry.
	ErrNotReplayable = errors.New("persisted artifacts cannot be replayed or copied")

	// ErrNoAnswer indicates there is no answer to copy or download yet.
	ErrNoAnswer = errors.New("no answer available")

	// ErrServiceUnavailable indicates a required collaborator is not configured.
	ErrServiceUnavailable = errors.New("service unavailable")
)

// TransportError describes a failed call to the remote answering service.
// StatusCode is zero for network-level failures.
type TransportError struct {
	StatusCode int
	Err        error
}

// Error implements error.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("HTTP error: %d", e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("network error: %v", e.Err)
	}
	return ErrTransport.Error()
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

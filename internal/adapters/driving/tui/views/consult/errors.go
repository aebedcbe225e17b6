package consult

import "errors"

// Error definitions for the consult view.
var (
	// ErrNoController indicates that no query controller was provided.
	ErrNoController = errors.New("query controller is required")

	// ErrNoActions indicates that no history action service was provided.
	ErrNoActions = errors.New("history actions are not available")
)

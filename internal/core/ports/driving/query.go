package driving

import (
	"context"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
)

// QueryController drives the lifecycle of one query at a time:
// submit, await, render or fail, record history, update metrics.
type QueryController interface {
	// Start loads history (reconciling server artifacts) and refreshes
	// metrics from the remote snapshot.
	Start(ctx context.Context) error

	// Submit sends a question. A blank question returns domain.ErrEmptyInput
	// without any state change. Transport failures leave the controller in
	// domain.StateFailed and return an error wrapping domain.ErrTransport.
	Submit(ctx context.Context, question string) (*domain.QueryOutcome, error)

	// Retry resubmits the last question.
	Retry(ctx context.Context) (*domain.QueryOutcome, error)

	// NewConsult clears the question, outcome and error display state.
	// History and metrics are untouched.
	NewConsult()

	// State returns the current lifecycle state.
	State() domain.ControllerState

	// LastError returns the error from the most recent failed submit.
	LastError() error

	// LastOutcome returns the most recent successful outcome, or nil.
	LastOutcome() *domain.QueryOutcome

	// LastQuestion returns the most recently submitted question.
	LastQuestion() string

	// Close releases resources owned by the controller.
	Close() error
}

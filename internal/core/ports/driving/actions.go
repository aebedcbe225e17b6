package driving

import (
	"context"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
)

// HistoryActionService provides actions on history entries and the current
// answer for external actors. This is used by TUI, CLI, and MCP adapters.
type HistoryActionService interface {
	// Repeat resubmits an interactive entry's question.
	// Artifact entries return domain.ErrNotReplayable.
	Repeat(ctx context.Context, id string) (*domain.QueryOutcome, error)

	// CopyQuestion copies an interactive entry's question to the clipboard.
	// Artifact entries return domain.ErrNotReplayable.
	CopyQuestion(ctx context.Context, id string) error

	// CopyAnswer copies the flattened answer of an outcome to the clipboard.
	CopyAnswer(ctx context.Context, outcome *domain.QueryOutcome) error

	// Transcript builds the downloadable document for a history entry.
	// Artifact entries are fetched from the service verbatim.
	Transcript(ctx context.Context, id string) (*domain.Transcript, error)

	// CurrentTranscript builds the downloadable document for an outcome.
	CurrentTranscript(outcome *domain.QueryOutcome) (*domain.Transcript, error)

	// SaveTranscript writes a transcript into the download directory and
	// returns the written path.
	SaveTranscript(t *domain.Transcript) (string, error)
}

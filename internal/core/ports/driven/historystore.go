package driven

import (
	"context"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
)

// HistoryKey is the fixed name of the history document.
const HistoryKey = "ia_jur_history"

// HistoryStore persists the history log as one whole document.
// Every write replaces the previous document; there are no partial updates.
type HistoryStore interface {
	// Load returns the stored log. A missing document yields an empty log
	// and no error. A corrupt document returns an error wrapping
	// domain.ErrStorage.
	Load(ctx context.Context) ([]domain.Query, error)

	// Save replaces the stored log.
	Save(ctx context.Context, entries []domain.Query) error

	// Close releases resources.
	Close() error
}

// HistoryWatcher reports when the stored history document changed
// outside this process.
type HistoryWatcher interface {
	// Changes emits once per detected rewrite. Closed by Close.
	Changes() <-chan struct{}

	// Close stops watching.
	Close() error
}

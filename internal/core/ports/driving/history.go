package driving

import (
	"context"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
)

// HistoryService owns the bounded, deduplicated history log.
type HistoryService interface {
	// Load reads the stored log and reconciles it against the server's
	// artifact list. Storage and listing failures are logged, never returned.
	Load(ctx context.Context) []domain.Query

	// Reload re-reads the stored log without reconciling.
	Reload(ctx context.Context) []domain.Query

	// Sync fetches the server's artifact list and reconciles it.
	Sync(ctx context.Context) error

	// Reconcile appends one entry per artifact not yet present by name.
	// It returns the number of entries added.
	Reconcile(ctx context.Context, artifacts []domain.Artifact) int

	// Record prepends an interactive entry built from a response.
	Record(ctx context.Context, question string, resp *domain.AnswerResponse, durationSeconds float64) domain.Query

	// Clear empties the log. Confirmation is the caller's concern.
	Clear(ctx context.Context)

	// Remove deletes one entry. Returns domain.ErrNotFound if absent.
	Remove(ctx context.Context, id string) error

	// Lookup returns a copy of one entry. Returns domain.ErrNotFound if absent.
	Lookup(id string) (*domain.Query, error)

	// List returns a copy of the log, most recent first.
	List() []domain.Query
}

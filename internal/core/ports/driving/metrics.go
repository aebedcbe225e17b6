package driving

import (
	"context"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
)

// MetricsService owns the usage metrics snapshot.
type MetricsService interface {
	// Recompute counts one more interactive query and recomputes the mean
	// duration over every numeric duration in log.
	Recompute(log []domain.Query, lastDuration float64, lastSourceCount int) domain.MetricsSnapshot

	// RefreshFromRemote merges the remote snapshot over the local one.
	// Failures are logged and the current snapshot is returned unchanged.
	RefreshFromRemote(ctx context.Context) domain.MetricsSnapshot

	// Snapshot returns the current snapshot.
	Snapshot() domain.MetricsSnapshot
}

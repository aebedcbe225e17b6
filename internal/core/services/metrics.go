package services

import (
	"context"
	"math"
	"sync"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
	"github.com/custodia-labs/iajur-cli/internal/core/ports/driven"
	"github.com/custodia-labs/iajur-cli/internal/core/ports/driving"
	"github.com/custodia-labs/iajur-cli/internal/logger"
)

// Ensure MetricsService implements the interface.
var _ driving.MetricsService = (*MetricsService)(nil)

// MetricsService accumulates usage metrics locally and merges the remote
// snapshot on demand.
type MetricsService struct {
	mu       sync.Mutex
	source   driven.MetricsSource
	snapshot domain.MetricsSnapshot
}

// NewMetricsService creates a metrics service. source may be nil.
func NewMetricsService(source driven.MetricsSource) *MetricsService {
	return &MetricsService{source: source}
}

// Recompute counts one more interactive query, adds its sources, and
// recomputes the mean over every numeric duration in log. Entries without
// a duration count in neither numerator nor denominator; with none at all
// the previous mean is kept.
func (s *MetricsService) Recompute(log []domain.Query, _ float64, lastSourceCount int) domain.MetricsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.TotalQueries++
	s.snapshot.ResearchQueries++
	s.snapshot.TotalSources += lastSourceCount

	if mean, ok := meanDuration(log); ok {
		s.snapshot.MeanDurationSeconds = &mean
	}

	return s.snapshot
}

// RefreshFromRemote merges the remote snapshot over the local one.
func (s *MetricsService) RefreshFromRemote(ctx context.Context) domain.MetricsSnapshot {
	if s.source == nil {
		return s.Snapshot()
	}

	remote, err := s.source.FetchMetrics(ctx)
	if err != nil {
		logger.Warn("metrics refresh failed: %v", err)
		return s.Snapshot()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = s.snapshot.Merge(*remote)
	return s.snapshot
}

// Snapshot returns the current snapshot.
func (s *MetricsService) Snapshot() domain.MetricsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// meanDuration averages numeric durations, rounded to two decimals.
func meanDuration(log []domain.Query) (float64, bool) {
	var sum float64
	var n int
	for i := range log {
		d := log[i].DurationSeconds
		if d == nil || math.IsNaN(*d) || math.IsInf(*d, 0) {
			continue
		}
		sum += *d
		n++
	}
	if n == 0 {
		return 0, false
	}
	return math.Round(sum/float64(n)*100) / 100, true
}

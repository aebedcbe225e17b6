package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
)

func TestMetricsService_Recompute_CountsAndMean(t *testing.T) {
	svc := NewMetricsService(nil)

	log := []domain.Query{
		{DurationSeconds: domain.Float(1)},
		{DurationSeconds: nil},
		{DurationSeconds: domain.Float(3)},
	}

	snap := svc.Recompute(log, 1, 4)

	assert.Equal(t, 1, snap.TotalQueries)
	assert.Equal(t, 1, snap.ResearchQueries)
	assert.Equal(t, 4, snap.TotalSources)
	require.NotNil(t, snap.MeanDurationSeconds)
	assert.InDelta(t, 2.0, *snap.MeanDurationSeconds, 1e-9)
	assert.Equal(t, "2.00", snap.MeanLabel())

	snap = svc.Recompute(log, 1, 2)
	assert.Equal(t, 2, snap.TotalQueries)
	assert.Equal(t, 6, snap.TotalSources)
	assert.Equal(t, snap, svc.Snapshot())
}

func TestMetricsService_Recompute_StoredStringDurations(t *testing.T) {
	var log []domain.Query
	doc := `[
		{"id":"1","question":"a","answer":"x","duration_seconds":"1.00","timestamp":"2024-05-01T10:00:00Z"},
		{"id":"2","question":"b","answer":"x","duration_seconds":"N/A","timestamp":"2024-05-01T10:00:00Z"},
		{"id":"3","question":"c","answer":"x","duration_seconds":"3.00","timestamp":"2024-05-01T10:00:00Z"}
	]`
	require.NoError(t, json.Unmarshal([]byte(doc), &log))

	snap := NewMetricsService(nil).Recompute(log, 3, 0)

	assert.Equal(t, "2.00", snap.MeanLabel())
}

func TestMetricsService_Recompute_NoDurationsKeepsMean(t *testing.T) {
	svc := NewMetricsService(nil)

	snap := svc.Recompute([]domain.Query{{}}, 0, 0)
	assert.Nil(t, snap.MeanDurationSeconds)
	assert.Equal(t, domain.NotAvailable, snap.MeanLabel())

	svc.Recompute([]domain.Query{{DurationSeconds: domain.Float(5)}}, 5, 0)
	snap = svc.Recompute([]domain.Query{{}}, 0, 0)
	require.NotNil(t, snap.MeanDurationSeconds)
	assert.InDelta(t, 5.0, *snap.MeanDurationSeconds, 1e-9)
}

func TestMetricsService_Recompute_RoundsMean(t *testing.T) {
	log := []domain.Query{
		{DurationSeconds: domain.Float(1)},
		{DurationSeconds: domain.Float(1)},
		{DurationSeconds: domain.Float(2)},
	}

	snap := NewMetricsService(nil).Recompute(log, 2, 0)

	require.NotNil(t, snap.MeanDurationSeconds)
	assert.InDelta(t, 1.33, *snap.MeanDurationSeconds, 1e-9)
}

func TestMetricsService_RefreshFromRemote_Merges(t *testing.T) {
	source := &mockMetricsSource{remote: &domain.RemoteMetrics{
		TotalQueries: domain.Int(120),
		Uptime:       domain.String("3d 4h"),
	}}
	svc := NewMetricsService(source)
	svc.Recompute([]domain.Query{{DurationSeconds: domain.Float(2)}}, 2, 7)

	snap := svc.RefreshFromRemote(context.Background())

	assert.Equal(t, 120, snap.TotalQueries)
	assert.Equal(t, 1, snap.ResearchQueries)
	assert.Equal(t, 7, snap.TotalSources)
	assert.Equal(t, "3d 4h", snap.Uptime)
	assert.Equal(t, "2.00", snap.MeanLabel())
}

func TestMetricsService_RefreshFromRemote_ErrorKeepsSnapshot(t *testing.T) {
	svc := NewMetricsService(&mockMetricsSource{err: errors.New("timeout")})
	before := svc.Recompute(nil, 1, 2)

	after := svc.RefreshFromRemote(context.Background())

	assert.Equal(t, before, after)
}

func TestMetricsService_RefreshFromRemote_NoSource(t *testing.T) {
	svc := NewMetricsService(nil)

	snap := svc.RefreshFromRemote(context.Background())

	assert.Equal(t, domain.MetricsSnapshot{}, snap)
}

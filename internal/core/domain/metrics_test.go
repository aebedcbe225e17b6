package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsSnapshot_MergeOverwritesPresentFields(t *testing.T) {
	local := MetricsSnapshot{
		TotalQueries:        3,
		ResearchQueries:     3,
		TotalSources:        9,
		MeanDurationSeconds: Float(1.5),
	}

	merged := local.Merge(RemoteMetrics{
		TotalQueries: Int(10),
		Uptime:       String("1h 2m"),
	})

	assert.Equal(t, 10, merged.TotalQueries)
	assert.Equal(t, 3, merged.ResearchQueries)
	assert.Equal(t, 9, merged.TotalSources)
	assert.Equal(t, Float(1.5), merged.MeanDurationSeconds)
	assert.Equal(t, "1h 2m", merged.Uptime)

	// Receiver is a value; the original is untouched.
	assert.Equal(t, 3, local.TotalQueries)
}

func TestMetricsSnapshot_MergeEmptyRemote(t *testing.T) {
	local := MetricsSnapshot{TotalQueries: 1}
	assert.Equal(t, local, local.Merge(RemoteMetrics{}))
}

func TestMetricsSnapshot_MeanLabel(t *testing.T) {
	assert.Equal(t, "N/A", MetricsSnapshot{}.MeanLabel())
	assert.Equal(t, "2.00", MetricsSnapshot{MeanDurationSeconds: Float(2)}.MeanLabel())
}

func TestControllerState_AcceptsSubmit(t *testing.T) {
	assert.True(t, StateIdle.AcceptsSubmit())
	assert.True(t, StateFailed.AcceptsSubmit())
	assert.False(t, StateSubmitting.AcceptsSubmit())
	assert.False(t, StateRendering.AcceptsSubmit())
}

package domain

// MetricsSnapshot holds aggregate usage counters.
type MetricsSnapshot struct {
	TotalQueries    int `json:"total_queries"`
	ResearchQueries int `json:"research_queries"`
	TotalSources    int `json:"total_sources"`

	// MeanDurationSeconds is nil until at least one numeric duration exists.
	MeanDurationSeconds *float64 `json:"mean_duration_seconds"`

	// Uptime is only known from the remote snapshot.
	Uptime string `json:"uptime,omitempty"`
}

// RemoteMetrics is the partial snapshot returned by the metrics endpoint.
// Absent fields stay nil and never overwrite local values.
type RemoteMetrics struct {
	TotalQueries        *int     `json:"total_consultas,omitempty"`
	ResearchQueries     *int     `json:"consultas_pesquisa,omitempty"`
	MeanDurationSeconds *float64 `json:"tempo_medio,omitempty"`
	TotalSources        *int     `json:"fontes_totais,omitempty"`
	Uptime              *string  `json:"uptime,omitempty"`
}

// Merge returns s with every field present in remote overwritten.
func (s MetricsSnapshot) Merge(remote RemoteMetrics) MetricsSnapshot {
	if remote.TotalQueries != nil {
		s.TotalQueries = *remote.TotalQueries
	}
	if remote.ResearchQueries != nil {
		s.ResearchQueries = *remote.ResearchQueries
	}
	if remote.MeanDurationSeconds != nil {
		mean := *remote.MeanDurationSeconds
		s.MeanDurationSeconds = &mean
	}
	if remote.TotalSources != nil {
		s.TotalSources = *remote.TotalSources
	}
	if remote.Uptime != nil {
		s.Uptime = *remote.Uptime
	}
	return s
}

// MeanLabel formats the mean duration with two decimals, or "N/A".
func (s MetricsSnapshot) MeanLabel() string {
	if s.MeanDurationSeconds == nil {
		return NotAvailable
	}
	return formatSeconds(*s.MeanDurationSeconds)
}

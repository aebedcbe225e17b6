package mcp

import (
	"github.com/custodia-labs/iajur-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Controller submits questions to the answering service.
	Controller driving.QueryController

	// History reads the consultation log.
	History driving.HistoryService

	// Metrics reports usage counters. Optional.
	Metrics driving.MetricsService

	// AppName is advertised as the implementation name. Empty means "iajur".
	AppName string
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Controller == nil {
		return ErrMissingController
	}
	if p.History == nil {
		return ErrMissingHistoryService
	}
	return nil
}

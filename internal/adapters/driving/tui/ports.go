// Package tui provides an interactive terminal user interface for IA-JUR.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/iajur-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Controller runs the consult state machine.
	Controller driving.QueryController

	// History owns the history log.
	History driving.HistoryService

	// Metrics owns the usage metrics snapshot.
	Metrics driving.MetricsService

	// Actions provides actions on history entries and answers.
	Actions driving.HistoryActionService

	// Settings manages application settings.
	Settings driving.SettingsService

	// AppName is shown in titles. Empty means IA-JUR.
	AppName string
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	controller driving.QueryController,
	history driving.HistoryService,
	metrics driving.MetricsService,
	actions driving.HistoryActionService,
) *Ports {
	return &Ports{
		Controller: controller,
		History:    history,
		Metrics:    metrics,
		Actions:    actions,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Controller == nil {
		return ErrMissingController
	}
	if p.History == nil {
		return ErrMissingHistoryService
	}
	return nil
}

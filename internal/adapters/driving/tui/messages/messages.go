// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/iajur-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewConsult is the question input and answer view.
	ViewConsult
	// ViewHistory lists past queries and persisted artifacts.
	ViewHistory
	// ViewMetrics shows aggregate usage metrics.
	ViewMetrics
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewConsult:
		return "consult"
	case ViewHistory:
		return "history"
	case ViewMetrics:
		return "metrics"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// ConsultCompleted carries the outcome of a submitted question.
type ConsultCompleted struct {
	Outcome *domain.QueryOutcome
	Err     error
}

// RepeatRequested asks the consult view to resubmit a history entry.
type RepeatRequested struct {
	ID string
}

// HistoryLoaded carries the history log.
type HistoryLoaded struct {
	Entries []domain.Query
	Err     error
}

// HistoryCleared signals the history log was emptied.
type HistoryCleared struct{}

// HistoryEntryRemoved signals one entry was removed.
type HistoryEntryRemoved struct {
	ID  string
	Err error
}

// MetricsLoaded carries a metrics snapshot.
type MetricsLoaded struct {
	Snapshot domain.MetricsSnapshot
}

// ActionCompleted reports the result of a copy or download action.
type ActionCompleted struct {
	Message string
	Err     error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}

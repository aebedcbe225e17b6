package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/views/consult"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/views/metrics"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/iajur-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	title string

	menuView     *menu.View
	consultView  *consult.View
	historyView  *history.View
	metricsView  *metrics.View
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	title := ports.AppName
	if title == "" {
		title = domain.DefaultAppName
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		title:        title,
		menuView:     menu.NewView(s, title),
		consultView:  consult.NewView(s, km, ports.Controller, ports.Actions).WithTitle(title),
		historyView:  history.NewView(s, km, ports.History, ports.Actions),
		metricsView:  metrics.NewView(s, km, ports.Metrics),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.consultView.WithContext(ctx)
	a.historyView.WithContext(ctx)
	a.metricsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle(a.title+" - Consulta Jurídica"),
	)
}

// Update implements tea.Model.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewConsult:
			a.consultView, cmd = a.consultView.Update(msg)
			a.err = a.consultView.Err()
		case messages.ViewHistory:
			a.historyView, cmd = a.historyView.Update(msg)
		case messages.ViewMetrics:
			a.metricsView, cmd = a.metricsView.Update(msg)
		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
		}
		return a, cmd

	// A consult keeps running while the user browses other views.
	case messages.ConsultCompleted, spinner.TickMsg:
		a.consultView, cmd = a.consultView.Update(msg)
		a.err = a.consultView.Err()
		return a, cmd

	case messages.RepeatRequested:
		a.currentView = messages.ViewConsult
		return a, a.consultView.Repeat(msg.ID)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewConsult:
			a.consultView.Reset()
			return a, a.consultView.Init()
		case messages.ViewHistory:
			a.historyView.Reset()
			return a, a.historyView.Init()
		case messages.ViewMetrics:
			return a, a.metricsView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewHelp:
			// No initialisation needed
		}
		return a, nil

	case messages.HistoryLoaded, messages.HistoryCleared, messages.HistoryEntryRemoved:
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd

	case messages.MetricsLoaded:
		a.metricsView, cmd = a.metricsView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewConsult:
		a.consultView, cmd = a.consultView.Update(msg)
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewMetrics:
		a.metricsView, cmd = a.metricsView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewConsult:
		return a.consultView.View()
	case messages.ViewHistory:
		return a.historyView.View()
	case messages.ViewMetrics:
		return a.metricsView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Consult:
  (type)      Enter question
  enter       Submit question
  n           New consult
  r           Retry after an error
  c           Copy answer
  d           Download transcript

History:
  j/k, ↑/↓    Navigate entries
  enter       Actions (repeat, copy, download, remove)
  s           Sync saved answers from server
  x           Clear history

Metrics:
  r           Refresh from server

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.consultView.SetDimensions(width, height)
	a.historyView.SetDimensions(width, height)
	a.metricsView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}

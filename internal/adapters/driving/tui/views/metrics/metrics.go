// Package metrics provides the usage metrics view for the TUI.
package metrics

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/iajur-cli/internal/core/domain"
	"github.com/custodia-labs/iajur-cli/internal/core/ports/driving"
)

// View shows the current metrics snapshot.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	metrics driving.MetricsService
	ctx     context.Context

	snapshot   domain.MetricsSnapshot
	refreshing bool

	width  int
	height int
	ready  bool
}

// NewView creates a new metrics view.
func NewView(s *styles.Styles, km *keymap.KeyMap, metrics driving.MetricsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:  s,
		keymap:  km,
		metrics: metrics,
		ctx:     context.Background(),
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init shows the local snapshot immediately.
func (v *View) Init() tea.Cmd {
	svc := v.metrics
	return func() tea.Msg {
		if svc == nil {
			return messages.MetricsLoaded{}
		}
		return messages.MetricsLoaded{Snapshot: svc.Snapshot()}
	}
}

func (v *View) refresh() tea.Cmd {
	svc, ctx := v.metrics, v.ctx
	return func() tea.Msg {
		return messages.MetricsLoaded{Snapshot: svc.RefreshFromRemote(ctx)}
	}
}

// Update handles messages for the metrics view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.MetricsLoaded:
		v.snapshot = msg.Snapshot
		v.refreshing = false

	case tea.KeyMsg:
		key := msg.String()
		switch {
		case msg.Type == tea.KeyEsc:
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case keymap.Matches(key, v.keymap.Refresh):
			if v.metrics == nil || v.refreshing {
				return v, nil
			}
			v.refreshing = true
			return v, v.refresh()
		}
	}
	return v, nil
}

// View renders the metrics view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Métricas"))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"Total de consultas", strconv.Itoa(v.snapshot.TotalQueries)},
		{"Consultas de pesquisa", strconv.Itoa(v.snapshot.ResearchQueries)},
		{"Tempo médio (s)", v.snapshot.MeanLabel()},
		{"Fontes consultadas", strconv.Itoa(v.snapshot.TotalSources)},
	}
	if v.snapshot.Uptime != "" {
		rows = append(rows, struct {
			label string
			value string
		}{"Uptime", v.snapshot.Uptime})
	}

	for _, r := range rows {
		b.WriteString(v.styles.Normal.Render(fmt.Sprintf("  %-24s", r.label)))
		b.WriteString(v.styles.Strong.Render(r.value))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.refreshing {
		b.WriteString(v.styles.Muted.Render("Atualizando..."))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Help.Render("[r] refresh  [esc] back"))
	return b.String()
}

// Snapshot returns the displayed snapshot.
func (v *View) Snapshot() domain.MetricsSnapshot {
	return v.snapshot
}

// Refreshing reports whether a remote refresh is in flight.
func (v *View) Refreshing() bool {
	return v.refreshing
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

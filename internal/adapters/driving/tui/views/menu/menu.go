// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/iajur-cli/internal/core/domain"
)

// Item is one menu entry. Quit entries close the program.
type Item struct {
	Label string
	Hint  string
	View  messages.ViewType
	Quit  bool
}

// DefaultItems returns the menu entries in display order.
func DefaultItems() []Item {
	return []Item{
		{Label: "Consult", Hint: "Ask a legal question", View: messages.ViewConsult},
		{Label: "History", Hint: "Browse, repeat and download past answers", View: messages.ViewHistory},
		{Label: "Metrics", Hint: "Usage counters from the server", View: messages.ViewMetrics},
		{Label: "Settings", Hint: "Server address, storage and downloads", View: messages.ViewSettings},
		{Label: "Help", Hint: "Keyboard shortcuts", View: messages.ViewHelp},
		{Label: "Quit", Hint: "Leave " + domain.DefaultAppName, Quit: true},
	}
}

// View is the main menu.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	title    string
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a menu titled with the application name.
func NewView(s *styles.Styles, title string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if title == "" {
		title = domain.DefaultAppName
	}

	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		title:  title,
		items:  DefaultItems(),
		width:  80,
		height: 24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, v.keymap.Up):
			v.move(-1)
		case keymap.Matches(k, v.keymap.Down):
			v.move(1)
		case keymap.Matches(k, v.keymap.Select):
			return v, v.choose(v.selected)
		case keymap.Matches(k, v.keymap.Quit):
			return v, tea.Quit
		default:
			// Digits jump straight to an entry.
			if len(k) == 1 && k[0] >= '1' && int(k[0]-'1') < len(v.items) {
				v.selected = int(k[0] - '1')
				return v, v.choose(v.selected)
			}
		}
	}

	return v, nil
}

func (v *View) move(delta int) {
	v.selected = max(0, min(len(v.items)-1, v.selected+delta))
}

func (v *View) choose(i int) tea.Cmd {
	item := v.items[i]
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.title))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Consulta Jurídica"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		label := fmt.Sprintf("%d. %s", i+1, item.Label)
		if i == v.selected {
			b.WriteString("> " + v.styles.Selected.Render(label))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(v.items[v.selected].Hint))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] navigate  [1-6/enter] select  [q] quit"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

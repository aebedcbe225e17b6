// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/iajur-cli/internal/core/domain"
	"github.com/custodia-labs/iajur-cli/internal/core/render"
)

// HistoryList displays history entries in a navigable list.
type HistoryList struct {
	entries  []domain.Query
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewHistoryList creates a new history list component.
func NewHistoryList(s *styles.Styles) *HistoryList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &HistoryList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (l *HistoryList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *HistoryList) Update(msg tea.Msg) (*HistoryList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the list.
func (l *HistoryList) View() string {
	if len(l.entries) == 0 {
		return l.styles.Muted.Render("Nenhuma consulta no histórico")
	}

	lines := make([]string, 0, len(l.entries)*2+2)
	header := l.styles.Subtitle.Render(fmt.Sprintf("Histórico (%d)", len(l.entries)))
	lines = append(lines, header, "")

	// Each entry takes two lines.
	visibleCount := (l.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.entries) {
		end = len(l.entries)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderEntry(i, &l.entries[i]))
	}

	return strings.Join(lines, "\n")
}

func (l *HistoryList) renderEntry(index int, q *domain.Query) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	title := indicator + q.ListingQuestion()
	if index == l.selected {
		title = l.styles.Selected.Render(title)
	} else {
		title = l.styles.Normal.Render(title)
	}

	return title + "\n" + l.styles.Muted.Render("    "+render.EntryDetails(q))
}

// SetEntries replaces the entries, keeping the selection in range.
func (l *HistoryList) SetEntries(entries []domain.Query) {
	l.entries = entries
	if l.selected >= len(entries) {
		l.selected = len(entries) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// Entries returns the current entries.
func (l *HistoryList) Entries() []domain.Query {
	return l.entries
}

// Selected returns the index of the selected entry.
func (l *HistoryList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *HistoryList) SetSelected(index int) {
	if index >= 0 && index < len(l.entries) {
		l.selected = index
	}
}

// SelectedEntry returns the currently selected entry, or nil if none.
func (l *HistoryList) SelectedEntry() *domain.Query {
	if len(l.entries) == 0 || l.selected < 0 || l.selected >= len(l.entries) {
		return nil
	}
	return &l.entries[l.selected]
}

// MoveUp moves selection up.
func (l *HistoryList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *HistoryList) MoveDown() {
	if l.selected < len(l.entries)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *HistoryList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of entries.
func (l *HistoryList) Count() int {
	return len(l.entries)
}

// IsEmpty returns whether the list is empty.
func (l *HistoryList) IsEmpty() bool {
	return len(l.entries) == 0
}

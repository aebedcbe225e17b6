// Package status provides the status bar shown under the consult and
// history views.
package status

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/styles"
)

// State selects the left-hand label and the key hints.
type State string

// Bar states.
const (
	StateReady      State = "ready"
	StateSubmitting State = "submitting"
	StateError      State = "error"
	StateAnswer     State = "answer"
	StateHistory    State = "history"
)

// Bar displays a status message on the left and key hints on the right.
type Bar struct {
	styles  *styles.Styles
	hints   map[State][]key.Binding
	state   State
	message string
	width   int
}

// NewBar creates a status bar. Nil arguments use the defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		hints: map[State][]key.Binding{
			StateReady:      km.ShortHelp(),
			StateSubmitting: {km.Back},
			StateError:      km.FailedHelp(),
			StateAnswer:     km.AnswerHelp(),
			StateHistory:    km.HistoryHelp(),
		},
		state: StateReady,
		width: 80,
	}
}

// View renders the bar padded to its width.
func (s *Bar) View() string {
	left := s.label()
	right := s.styles.Muted.Render(s.hintLine())

	gap := s.width - s.styles.StatusBar.GetHorizontalPadding() - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *Bar) label() string {
	switch {
	case s.state == StateSubmitting:
		return s.styles.Muted.Render("Consultando...")
	case s.state == StateError && s.message != "":
		return s.styles.Error.Render("Error: " + s.message)
	case s.state == StateError:
		return s.styles.Error.Render("Error")
	case s.message != "":
		return s.styles.Normal.Render(s.message)
	default:
		return s.styles.Muted.Render("Ready")
	}
}

func (s *Bar) hintLine() string {
	bindings := s.hints[s.state]
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return strings.Join(parts, " | ")
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the left-hand message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetWidth sets the bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the bar width.
func (s *Bar) Width() int {
	return s.width
}

// Clear returns the bar to Ready with no message.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}

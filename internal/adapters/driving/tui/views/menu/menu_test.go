package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/styles"
)

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles(), "IA-JUR")

	require.NotNil(t, view)
	assert.Len(t, view.items, 6)
	assert.Equal(t, 0, view.selected)
	assert.Equal(t, 80, view.width)
	assert.Equal(t, 24, view.height)
	assert.Nil(t, view.Init())
}

func TestNewView_Defaults(t *testing.T) {
	view := NewView(nil, "")

	require.NotNil(t, view.styles)
	assert.Equal(t, "IA-JUR", view.title)
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil, "")

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 100, view.width)
}

func TestView_Update_Navigation(t *testing.T) {
	view := NewView(nil, "")
	down := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	up := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.Selected())

	for i := 0; i < 10; i++ {
		view.Update(down)
	}
	assert.Equal(t, 5, view.Selected())

	view.Update(up)
	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 3, view.Selected())

	for i := 0; i < 10; i++ {
		view.Update(up)
	}
	assert.Equal(t, 0, view.Selected())
}

func TestView_Update_EnterChangesView(t *testing.T) {
	tests := []struct {
		index int
		want  messages.ViewType
	}{
		{0, messages.ViewConsult},
		{1, messages.ViewHistory},
		{2, messages.ViewMetrics},
		{3, messages.ViewSettings},
		{4, messages.ViewHelp},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			view := NewView(nil, "")
			view.selected = tt.index

			_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

			require.NotNil(t, cmd)
			msg, ok := cmd().(messages.ViewChanged)
			require.True(t, ok)
			assert.Equal(t, tt.want, msg.View)
		})
	}
}

func TestView_Update_DigitShortcut(t *testing.T) {
	view := NewView(nil, "")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})

	require.NotNil(t, cmd)
	assert.Equal(t, 2, view.Selected())
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMetrics}, cmd())

	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'9'}})
	assert.Nil(t, cmd)
	assert.Equal(t, 2, view.Selected())
}

func TestView_Update_Quit(t *testing.T) {
	view := NewView(nil, "")
	view.selected = 5

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_View(t *testing.T) {
	view := NewView(nil, "JUR")
	assert.Equal(t, "Initialising...", view.View())

	view.SetDimensions(100, 40)
	out := view.View()

	assert.Contains(t, out, "JUR")
	assert.Contains(t, out, "Consulta Jurídica")
	for _, label := range []string{"Consult", "History", "Metrics", "Settings", "Help", "Quit"} {
		assert.Contains(t, out, label)
	}
	assert.Contains(t, out, "> ")
	assert.Contains(t, out, "1. Consult")
	assert.Contains(t, out, "Ask a legal question")

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Contains(t, view.View(), "Browse, repeat and download past answers")
}

// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
)

// Theme is the colour palette of the TUI.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color

	// Sections colours answer section titles. Missing entries fall back
	// to Secondary.
	Sections map[domain.SectionID]lipgloss.Color
}

// DefaultTheme returns the navy and gold palette.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#3B5BDB"),
		Secondary:  lipgloss.Color("#D4A72C"),
		Background: lipgloss.Color("#111827"),
		Foreground: lipgloss.Color("#E5E7EB"),
		Muted:      lipgloss.Color("#6B7280"),
		Success:    lipgloss.Color("#34D399"),
		Warning:    lipgloss.Color("#FBBF24"),
		Error:      lipgloss.Color("#F87171"),
		Border:     lipgloss.Color("#374151"),
		Sections: map[domain.SectionID]lipgloss.Color{
			domain.SectionImmediateAnswer:       lipgloss.Color("#60A5FA"),
			domain.SectionDetailedAnalysis:      lipgloss.Color("#A78BFA"),
			domain.SectionPracticalImplications: lipgloss.Color("#34D399"),
			domain.SectionConsultedSources:      lipgloss.Color("#9CA3AF"),
		},
	}
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style
	Selected lipgloss.Style

	// Strong renders emphasised spans inside answers.
	Strong lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	// Notice frames the legal disclaimer.
	Notice lipgloss.Style

	// Badge marks follow-up answers.
	Badge lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Border     lipgloss.Style
}

// NewStyles creates styles from a theme. A nil theme means DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	boxed := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	return &Styles{
		theme: theme,

		Title:    fg(theme.Primary).Bold(true).Underline(true),
		Subtitle: fg(theme.Secondary).Bold(true),
		Normal:   fg(theme.Foreground),
		Muted:    fg(theme.Muted),
		Help:     fg(theme.Muted).Italic(true),
		Selected: fg(theme.Background).Background(theme.Secondary).Bold(true),

		Strong: fg(theme.Foreground).Bold(true),

		Error:   fg(theme.Error).Bold(true),
		Success: fg(theme.Success),
		Warning: fg(theme.Warning),

		Notice: fg(theme.Warning).
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderForeground(theme.Secondary).
			PaddingLeft(1),

		Badge: fg(theme.Background).Background(theme.Primary).Padding(0, 1),

		InputField: boxed.Padding(0, 1),
		StatusBar:  fg(theme.Muted).Background(theme.Background).Padding(0, 1),
		Border:     boxed,
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// SectionTitle returns the title style for an answer section.
func (s *Styles) SectionTitle(id domain.SectionID) lipgloss.Style {
	if c, ok := s.theme.Sections[id]; ok {
		return s.Subtitle.Foreground(c)
	}
	return s.Subtitle
}

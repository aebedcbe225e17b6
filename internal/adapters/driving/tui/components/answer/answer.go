// Package answer renders display blocks with lipgloss.
package answer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/iajur-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/iajur-cli/internal/core/domain"
	"github.com/custodia-labs/iajur-cli/internal/core/render"
)

// minWidth keeps wrapping sane on tiny terminals.
const minWidth = 20

// Panel renders a query outcome.
type Panel struct {
	styles *styles.Styles
	width  int
}

// NewPanel creates a new answer panel.
func NewPanel(s *styles.Styles) *Panel {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Panel{styles: s, width: 80}
}

// SetWidth sets the wrap width.
func (p *Panel) SetWidth(width int) {
	p.width = width
}

// View renders the outcome's blocks followed by its metadata line.
func (p *Panel) View(outcome *domain.QueryOutcome) string {
	if outcome == nil {
		return ""
	}

	meta := fmt.Sprintf("Duração: %ss · Fontes: %d · Workflow ID: %s",
		outcome.DurationLabel(), outcome.SourceCount, outcome.WorkflowID)
	footer := p.styles.Muted.Render(meta)
	if outcome.IsFollowup {
		footer = p.styles.Badge.Render("continuação") + " " + footer
	}

	return p.Blocks(outcome.Blocks) + "\n\n" + footer
}

// Blocks renders display blocks separated by blank lines.
func (p *Panel) Blocks(blocks []domain.DisplayBlock) string {
	width := p.width
	if width < minWidth {
		width = minWidth
	}

	parts := make([]string, 0, len(blocks))
	for _, blk := range blocks {
		parts = append(parts, p.block(blk, width))
	}
	return strings.Join(parts, "\n\n")
}

func (p *Panel) block(blk domain.DisplayBlock, width int) string {
	body := lipgloss.NewStyle().Width(width)

	switch blk.Kind {
	case domain.BlockNotice:
		return p.styles.Notice.Width(width - 2).Render(p.markup(blk.Content))

	case domain.BlockList:
		lines := []string{p.styles.SectionTitle(blk.Section).Render(blk.Title)}
		for _, item := range blk.Items {
			lines = append(lines, body.Render("• "+item))
		}
		return strings.Join(lines, "\n")

	case domain.BlockSection:
		lines := []string{p.styles.SectionTitle(blk.Section).Render(blk.Title)}
		if blk.Content != "" {
			lines = append(lines, body.Render(p.markup(blk.Content)))
		}
		indent := lipgloss.NewStyle().Width(width - 2).PaddingLeft(2)
		for _, t := range blk.Topics {
			lines = append(lines, p.styles.Strong.Render(t.Heading), indent.Render(p.markup(t.Content)))
		}
		return strings.Join(lines, "\n")

	default:
		return body.Render(p.markup(blk.Content))
	}
}

// markup translates strong spans to the Strong style.
func (p *Panel) markup(m domain.Markup) string {
	return render.Translate(m, p.styles.Strong.Render)
}

package render

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
)

const strongReplacement = domain.StrongOpen + "${1}" + domain.StrongClose

// stages run in this exact order, each on the previous stage's output.
// Overlapping markers resolve however this order resolves them.
var stages = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^## (.+)$`),
	regexp.MustCompile(`(?m)^# (.+)$`),
	regexp.MustCompile(`\*\*\*(.+?)\*\*\*`),
	regexp.MustCompile(`\*\*(.+?)\*\*`),
	regexp.MustCompile(`\*(.+?)\*`),
}

// Format converts lightweight markup into display markup. Empty input
// yields the "N/A" placeholder.
func Format(text string) domain.Markup {
	if text == "" {
		return domain.NotAvailable
	}

	out := text
	for _, re := range stages {
		out = re.ReplaceAllString(out, strongReplacement)
	}
	out = strings.ReplaceAll(out, "\n", domain.LineBreak)

	return domain.Markup(out)
}

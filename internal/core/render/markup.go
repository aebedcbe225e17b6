package render

import (
	"strings"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
)

// Translate rewrites display markup for a host: strong spans pass through
// strong and line breaks become newlines. A nil strong drops the emphasis.
func Translate(m domain.Markup, strong func(string) string) string {
	text := strings.ReplaceAll(string(m), domain.LineBreak, "\n")
	if strong == nil {
		strong = func(s string) string { return s }
	}

	var b strings.Builder
	for {
		open := strings.Index(text, domain.StrongOpen)
		if open < 0 {
			b.WriteString(text)
			break
		}
		rest := text[open+len(domain.StrongOpen):]
		end := strings.Index(rest, domain.StrongClose)
		if end < 0 {
			// Unbalanced; keep what is left literally.
			b.WriteString(text)
			break
		}
		b.WriteString(text[:open])
		b.WriteString(strong(dropTokens(rest[:end])))
		text = rest[end+len(domain.StrongClose):]
	}

	// Nested spans leave stray tokens behind.
	return dropTokens(b.String())
}

func dropTokens(s string) string {
	s = strings.ReplaceAll(s, domain.StrongOpen, "")
	return strings.ReplaceAll(s, domain.StrongClose, "")
}

// Strip returns the markup as plain text.
func Strip(m domain.Markup) string {
	return Translate(m, nil)
}

// BlocksText renders display blocks as plain text, one block per paragraph.
func BlocksText(blocks []domain.DisplayBlock) string {
	parts := make([]string, 0, len(blocks))
	for _, blk := range blocks {
		var b strings.Builder
		if blk.Title != "" {
			b.WriteString(blk.Title + "\n")
		}
		switch blk.Kind {
		case domain.BlockList:
			for _, item := range blk.Items {
				b.WriteString("- " + item + "\n")
			}
		default:
			if blk.Content != "" {
				b.WriteString(Strip(blk.Content) + "\n")
			}
			for _, t := range blk.Topics {
				b.WriteString("\n" + t.Heading + "\n" + Strip(t.Content) + "\n")
			}
		}
		parts = append(parts, strings.TrimRight(b.String(), "\n"))
	}
	return strings.Join(parts, "\n\n")
}

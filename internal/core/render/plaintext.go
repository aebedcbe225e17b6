package render

import (
	"strings"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
)

// Headings used when flattening a structured answer.
const (
	headingQuery        = "CONSULTA"
	headingImmediate    = "RESPOSTA RÁPIDA"
	headingSummary      = "RESUMO EXPLICATIVO"
	headingAnalysis     = "ANÁLISE TÉCNICA DETALHADA"
	headingImplications = "IMPLICAÇÕES PRÁTICAS"
	headingSources      = "FONTES CONSULTADAS"
	headingDisclaimer   = "AVISO LEGAL"
)

// Flatten produces the plain-text body stored with a history entry and
// written to transcripts. Plain text is returned as is ("N/A" when empty).
// Structured answers are written section by section under upper-case
// headings; sections without content are skipped.
func Flatten(answer domain.Answer, question string) string {
	if !answer.IsStructured() {
		if answer.Text == "" {
			return domain.NotAvailable
		}
		return answer.Text
	}

	doc := answer.Document
	var b strings.Builder

	received := doc.ReceivedQuery
	if received == "" {
		received = question
	}
	b.WriteString(headingQuery + ": " + received + "\n\n")

	writeText := func(heading string, s *domain.TextSection) {
		if s == nil || s.Content == "" {
			return
		}
		b.WriteString(heading + ":\n" + s.Content + "\n\n")
	}

	writeText(headingImmediate, doc.ImmediateAnswer)
	writeText(headingSummary, doc.ExplanatorySummary)

	if doc.DetailedAnalysis != nil && doc.DetailedAnalysis.Topics != nil {
		b.WriteString(headingAnalysis + ":\n")
		for _, t := range doc.DetailedAnalysis.Topics {
			b.WriteString("\n" + t.KeyTerm + ":\n" + t.TechnicalAnalysis + "\n")
		}
		b.WriteString("\n")
	}

	writeText(headingImplications, doc.PracticalImplications)

	if doc.ConsultedSources != nil && doc.ConsultedSources.Items != nil {
		b.WriteString(headingSources + ":\n" + strings.Join(doc.ConsultedSources.Items, "\n") + "\n\n")
	}

	if doc.LegalDisclaimer != nil && *doc.LegalDisclaimer != "" {
		b.WriteString(headingDisclaimer + ":\n" + *doc.LegalDisclaimer)
	}

	return b.String()
}

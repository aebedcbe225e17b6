package render

import "github.com/custodia-labs/iajur-cli/internal/core/domain"

// Render converts an answer into display blocks. Plain text becomes a
// single text block. A structured document yields one block per present
// section, always in the order immediate answer, explanatory summary,
// detailed analysis, practical implications, consulted sources, legal
// disclaimer, regardless of payload key order.
func Render(answer domain.Answer) []domain.DisplayBlock {
	if !answer.IsStructured() {
		return []domain.DisplayBlock{{
			Kind:    domain.BlockText,
			Content: Format(answer.Text),
		}}
	}

	doc := answer.Document
	blocks := make([]domain.DisplayBlock, 0, 6)

	if doc.ImmediateAnswer != nil {
		blocks = append(blocks, textSection(domain.SectionImmediateAnswer, doc.ImmediateAnswer))
	}
	if doc.ExplanatorySummary != nil {
		blocks = append(blocks, textSection(domain.SectionExplanatorySummary, doc.ExplanatorySummary))
	}
	if doc.DetailedAnalysis != nil {
		blocks = append(blocks, topicSection(doc.DetailedAnalysis))
	}
	if doc.PracticalImplications != nil {
		blocks = append(blocks, textSection(domain.SectionPracticalImplications, doc.PracticalImplications))
	}
	if doc.ConsultedSources != nil {
		blocks = append(blocks, sourcesSection(doc.ConsultedSources))
	}
	if doc.LegalDisclaimer != nil {
		blocks = append(blocks, domain.DisplayBlock{
			Kind:    domain.BlockNotice,
			Section: domain.SectionLegalDisclaimer,
			Content: Format(*doc.LegalDisclaimer),
		})
	}

	return blocks
}

func textSection(id domain.SectionID, s *domain.TextSection) domain.DisplayBlock {
	return domain.DisplayBlock{
		Kind:    domain.BlockSection,
		Section: id,
		Title:   s.Title,
		Content: Format(s.Content),
	}
}

func topicSection(s *domain.TopicSection) domain.DisplayBlock {
	topics := make([]domain.TopicBlock, 0, len(s.Topics))
	for _, t := range s.Topics {
		topics = append(topics, domain.TopicBlock{
			Heading: t.KeyTerm,
			Content: Format(t.TechnicalAnalysis),
		})
	}
	return domain.DisplayBlock{
		Kind:    domain.BlockSection,
		Section: domain.SectionDetailedAnalysis,
		Title:   s.Title,
		Topics:  topics,
	}
}

// sourcesSection copies citations verbatim; they are not markup.
func sourcesSection(s *domain.SourcesSection) domain.DisplayBlock {
	items := make([]string, len(s.Items))
	copy(items, s.Items)
	return domain.DisplayBlock{
		Kind:    domain.BlockList,
		Section: domain.SectionConsultedSources,
		Title:   s.Title,
		Items:   items,
	}
}

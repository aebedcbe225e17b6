package domain

// Markup is display-ready text using a canonical inline representation:
// strong-emphasis spans delimited by StrongOpen/StrongClose and line breaks
// encoded as LineBreak. Hosts translate it to their own rendering.
type Markup string

// Markup tokens.
const (
	StrongOpen  = "<strong>"
	StrongClose = "</strong>"
	LineBreak   = "<br>"
)

// BlockKind identifies the shape of a display block.
type BlockKind string

const (
	// BlockText is a single formatted text span (plain-text answers).
	BlockText BlockKind = "text"

	// BlockSection is a titled section with formatted content or topics.
	BlockSection BlockKind = "section"

	// BlockList is a titled unordered list of literal strings.
	BlockList BlockKind = "list"

	// BlockNotice is formatted content flagged for notice styling.
	BlockNotice BlockKind = "notice"
)

// SectionID names the structured answer section a block was built from.
type SectionID string

// Recognised sections, in rendering order.
const (
	SectionImmediateAnswer       SectionID = "immediate_answer"
	SectionExplanatorySummary    SectionID = "explanatory_summary"
	SectionDetailedAnalysis      SectionID = "detailed_analysis"
	SectionPracticalImplications SectionID = "practical_implications"
	SectionConsultedSources      SectionID = "consulted_sources"
	SectionLegalDisclaimer       SectionID = "legal_disclaimer"
)

// DisplayBlock is one renderable unit of output.
type DisplayBlock struct {
	Kind    BlockKind `json:"kind"`
	Section SectionID `json:"section,omitempty"`
	Title   string    `json:"title,omitempty"`

	// Content is the formatted body for text, section and notice blocks.
	Content Markup `json:"content,omitempty"`

	// Topics holds the detailed-analysis sub-blocks in payload order.
	Topics []TopicBlock `json:"topics,omitempty"`

	// Items holds literal, unformatted list entries.
	Items []string `json:"items,omitempty"`
}

// TopicBlock is a key-term heading with its formatted analysis.
type TopicBlock struct {
	Heading string `json:"heading"`
	Content Markup `json:"content"`
}

package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AnswerKind discriminates the two answer payload shapes.
type AnswerKind string

const (
	// AnswerPlainText is a single block of freeform text.
	AnswerPlainText AnswerKind = "plain_text"

	// AnswerStructured is a multi-section AnswerDocument.
	AnswerStructured AnswerKind = "structured"
)

// Answer is the union PlainText(string) | Structured(AnswerDocument).
// Exactly one of Text or Document is meaningful, selected by Kind.
type Answer struct {
	Kind     AnswerKind
	Text     string
	Document *AnswerDocument
}

// PlainTextAnswer builds a plain-text answer.
func PlainTextAnswer(text string) Answer {
	return Answer{Kind: AnswerPlainText, Text: text}
}

// StructuredAnswer builds a structured answer.
func StructuredAnswer(doc AnswerDocument) Answer {
	return Answer{Kind: AnswerStructured, Document: &doc}
}

// IsStructured reports whether the answer carries an AnswerDocument.
func (a Answer) IsStructured() bool {
	return a.Kind == AnswerStructured && a.Document != nil
}

// IsEmpty reports whether the answer has no content at all.
func (a Answer) IsEmpty() bool {
	return !a.IsStructured() && a.Text == ""
}

// MarshalJSON encodes the answer using the wire shape: a JSON string for
// plain text, a JSON object for structured documents.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.IsStructured() {
		return json.Marshal(a.Document)
	}
	return json.Marshal(a.Text)
}

// UnmarshalJSON decodes either wire shape. An object is only treated as a
// structured document when it carries at least one recognised section key;
// any other object degrades to plain text holding its compact JSON.
func (a *Answer) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*a = PlainTextAnswer("")
		return nil
	}

	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return fmt.Errorf("decode answer text: %w", err)
		}
		*a = PlainTextAnswer(text)
		return nil

	case '{':
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &keys); err != nil {
			return fmt.Errorf("decode answer document: %w", err)
		}
		if !hasSectionMarker(keys) {
			var compact bytes.Buffer
			if err := json.Compact(&compact, trimmed); err != nil {
				return fmt.Errorf("compact answer: %w", err)
			}
			*a = PlainTextAnswer(compact.String())
			return nil
		}
		var doc AnswerDocument
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return fmt.Errorf("decode answer document: %w", err)
		}
		*a = StructuredAnswer(doc)
		return nil

	default:
		// Numbers and booleans are shown verbatim.
		*a = PlainTextAnswer(string(trimmed))
		return nil
	}
}

// Section keys recognised in a structured answer document.
const (
	SectionKeyImmediateAnswer       = "resposta_imediata"
	SectionKeyExplanatorySummary    = "resumo_explicativo"
	SectionKeyDetailedAnalysis      = "detalhamento_juridico"
	SectionKeyPracticalImplications = "implicacoes_praticas"
	SectionKeyConsultedSources      = "fontes_consultadas"
	SectionKeyLegalDisclaimer       = "aviso_legal"
)

func hasSectionMarker(keys map[string]json.RawMessage) bool {
	for _, k := range []string{
		SectionKeyImmediateAnswer,
		SectionKeyExplanatorySummary,
		SectionKeyDetailedAnalysis,
		SectionKeyPracticalImplications,
		SectionKeyConsultedSources,
		SectionKeyLegalDisclaimer,
	} {
		if raw, ok := keys[k]; ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return true
		}
	}
	return false
}

// AnswerDocument is a fixed-schema multi-section answer.
// A nil section means the key was absent from the payload.
type AnswerDocument struct {
	// ReceivedQuery echoes the question as understood by the service.
	ReceivedQuery string `json:"consulta_recebida,omitempty"`

	ImmediateAnswer       *TextSection    `json:"resposta_imediata,omitempty"`
	ExplanatorySummary    *TextSection    `json:"resumo_explicativo,omitempty"`
	DetailedAnalysis      *TopicSection   `json:"detalhamento_juridico,omitempty"`
	PracticalImplications *TextSection    `json:"implicacoes_praticas,omitempty"`
	ConsultedSources      *SourcesSection `json:"fontes_consultadas,omitempty"`

	// LegalDisclaimer is plain text without a title.
	LegalDisclaimer *string `json:"aviso_legal,omitempty"`
}

// TextSection is a titled block of freeform text.
type TextSection struct {
	Title   string `json:"titulo"`
	Content string `json:"conteudo"`
}

// TopicSection is a titled list of analysed topics.
type TopicSection struct {
	Title  string  `json:"titulo"`
	Topics []Topic `json:"topicos"`
}

// Topic is one key term with its technical analysis.
type Topic struct {
	KeyTerm           string `json:"termo_chave"`
	TechnicalAnalysis string `json:"analise_tecnica"`
}

// SourcesSection is a titled list of citation strings.
type SourcesSection struct {
	Title string   `json:"titulo"`
	Items []string `json:"lista"`
}

// AnswerResponse is the success payload of the answering service.
type AnswerResponse struct {
	// Answer is resposta_completa: plain text or a structured document.
	Answer Answer `json:"resposta_completa"`

	// Summary is the optional short summary (resumo).
	Summary string `json:"resumo,omitempty"`

	// SourceCount is the number of sources consulted (fontes).
	SourceCount int `json:"fontes"`

	// WorkflowID is an opaque correlation token.
	WorkflowID string `json:"workflow_id"`

	// IsFollowup marks answers the service treated as a follow-up question.
	IsFollowup bool `json:"is_followup,omitempty"`

	// Context carries follow-up details when the service reports them.
	Context *AnswerContext `json:"contexto,omitempty"`
}

// AnswerContext is the optional follow-up context block.
type AnswerContext struct {
	IsFollowup    bool    `json:"is_followup"`
	FollowupScore float64 `json:"followup_score,omitempty"`
	ContextSize   int     `json:"context_size,omitempty"`
}

// Followup reports whether the service flagged this answer as a follow-up.
func (r *AnswerResponse) Followup() bool {
	if r == nil {
		return false
	}
	return r.IsFollowup || (r.Context != nil && r.Context.IsFollowup)
}

// WorkflowOrDefault returns the workflow id or the "N/A" placeholder.
func (r *AnswerResponse) WorkflowOrDefault() string {
	if r == nil || r.WorkflowID == "" {
		return NotAvailable
	}
	return r.WorkflowID
}

// NotAvailable is the placeholder shown for missing values.
const NotAvailable = "N/A"

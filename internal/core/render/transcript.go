package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
)

// Transcript date and file name layouts.
const (
	transcriptDateLayout = "02/01/2006, 15:04:05"
	fileDateLayout       = "2006-01-02"
	filePrefix           = "consulta_ia_jur_"
)

// Identity names the application inside transcripts.
type Identity struct {
	AppName    string
	SystemName string
}

// CurrentTranscript builds the download document for the answer on screen.
func CurrentTranscript(id Identity, question, answer string, at time.Time) domain.Transcript {
	var b strings.Builder
	writeHeader(&b, id, question, answer)
	fmt.Fprintf(&b, "Data: %s\n", at.Local().Format(transcriptDateLayout))
	fmt.Fprintf(&b, "Sistema: %s", id.SystemName)

	return domain.Transcript{
		Name:    filePrefix + at.UTC().Format(fileDateLayout) + ".txt",
		Content: []byte(b.String()),
	}
}

// HistoryTranscript builds the download document for an interactive
// history entry, including its duration, source count and workflow id.
func HistoryTranscript(id Identity, q domain.Query) domain.Transcript {
	body := q.Body
	if body == "" {
		body = Flatten(q.Answer, q.Question)
	}

	var b strings.Builder
	writeHeader(&b, id, q.Question, body)
	fmt.Fprintf(&b, "Data: %s\n", q.Timestamp.Local().Format(transcriptDateLayout))
	fmt.Fprintf(&b, "Duração: %ss\n", q.DurationLabel())
	fmt.Fprintf(&b, "Fontes: %s\n", q.SourcesLabel())
	fmt.Fprintf(&b, "Workflow ID: %s\n", q.WorkflowLabel())
	fmt.Fprintf(&b, "Sistema: %s", id.SystemName)

	return domain.Transcript{
		Name:    filePrefix + q.Timestamp.UTC().Format(fileDateLayout) + "_" + q.ID + ".txt",
		Content: []byte(b.String()),
	}
}

func writeHeader(b *strings.Builder, id Identity, question, answer string) {
	title := id.AppName + " - Consulta Jurídica"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", 24) + "\n\n")
	fmt.Fprintf(b, "Pergunta: %s\n\n", question)
	fmt.Fprintf(b, "Resposta:\n%s\n\n", answer)
}

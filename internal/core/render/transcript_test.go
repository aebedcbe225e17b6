package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
)

var testIdentity = Identity{
	AppName:    "IA-JUR",
	SystemName: "IA-JUR - Sistema de Pesquisa Jurídica Inteligente",
}

func TestCurrentTranscript(t *testing.T) {
	at := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)

	tr := CurrentTranscript(testIdentity, "O que é usucapião?", "Texto simples", at)

	assert.Equal(t, "consulta_ia_jur_2024-03-05.txt", tr.Name)
	content := string(tr.Content)
	assert.True(t, strings.HasPrefix(content,
		"IA-JUR - Consulta Jurídica\n========================\n\n"+
			"Pergunta: O que é usucapião?\n\n"+
			"Resposta:\nTexto simples\n\n"+
			"Data: "))
	assert.Contains(t, content, at.Local().Format("02/01/2006, 15:04:05"))
	assert.True(t, strings.HasSuffix(content, "\nSistema: IA-JUR - Sistema de Pesquisa Jurídica Inteligente"))
	assert.NotContains(t, content, "Duração")
}

func TestHistoryTranscript(t *testing.T) {
	q := domain.Query{
		ID:              "0190f5c2",
		Question:        "O que é usucapião?",
		Answer:          domain.PlainTextAnswer("Texto simples"),
		Body:            "Texto simples",
		DurationSeconds: domain.Float(1.5),
		SourceCount:     domain.Int(2),
		WorkflowID:      domain.String("wf-1"),
		Timestamp:       time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC),
	}

	tr := HistoryTranscript(testIdentity, q)

	assert.Equal(t, "consulta_ia_jur_2024-03-05_0190f5c2.txt", tr.Name)
	content := string(tr.Content)
	assert.Contains(t, content, "Resposta:\nTexto simples\n\n")
	assert.Contains(t, content, "\nDuração: 1.50s\nFontes: 2\nWorkflow ID: wf-1\nSistema: ")
}

func TestHistoryTranscript_FlattensWhenBodyMissing(t *testing.T) {
	q := domain.Query{
		ID:       "x",
		Question: "Pode?",
		Answer: domain.StructuredAnswer(domain.AnswerDocument{
			ImmediateAnswer: &domain.TextSection{Title: "R", Content: "Sim."},
		}),
		Timestamp: time.Now(),
	}

	content := string(HistoryTranscript(testIdentity, q).Content)
	assert.Contains(t, content, "CONSULTA: Pode?")
	assert.Contains(t, content, "Duração: N/As")
}

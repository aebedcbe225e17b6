package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/iajur-cli/internal/core/domain"
	"github.com/custodia-labs/iajur-cli/internal/core/render"
)

// defaultHistoryLimit caps the history tool when no limit is given.
const defaultHistoryLimit = 10

// ConsultInput is the input schema for the consult tool.
type ConsultInput struct {
	Question string `json:"question" jsonschema:"the legal question, in natural language"`
}

// ConsultOutput is the output schema for the consult tool.
type ConsultOutput struct {
	QueryID         string  `json:"query_id"`
	Answer          string  `json:"answer"`
	DurationSeconds float64 `json:"duration_seconds"`
	SourceCount     int     `json:"source_count"`
	WorkflowID      string  `json:"workflow_id"`
	IsFollowup      bool    `json:"is_followup"`
}

// HistoryInput is the input schema for the history tool.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of entries to return (default 10)"`
}

// HistoryOutput is the output schema for the history tool.
type HistoryOutput struct {
	Entries []HistoryEntryOutput `json:"entries"`
	Count   int                  `json:"count"`
}

// HistoryEntryOutput represents a single history entry.
type HistoryEntryOutput struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Timestamp string `json:"timestamp"`
	Origin    string `json:"origin"`
	Duration  string `json:"duration"`
	Sources   string `json:"sources"`
	Workflow  string `json:"workflow"`
	Artifact  string `json:"artifact,omitempty"`
}

// MetricsInput is the input schema for the metrics tool.
type MetricsInput struct{}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "consult",
		Description: "Ask the IA-JUR legal research service a question",
	}, s.handleConsult)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "history",
		Description: "List recent consultations, most recent first",
	}, s.handleHistory)

	if s.ports.Metrics != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "metrics",
			Description: "Show usage metrics of the legal research service",
		}, s.handleMetrics)
	}
}

// handleConsult handles the consult tool invocation.
func (s *Server) handleConsult(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ConsultInput,
) (*mcp.CallToolResult, ConsultOutput, error) {
	outcome, err := s.ports.Controller.Submit(ctx, input.Question)
	if err != nil {
		return nil, ConsultOutput{}, fmt.Errorf("consult: %w", err)
	}

	return nil, ConsultOutput{
		QueryID:         outcome.Query.ID,
		Answer:          render.BlocksText(outcome.Blocks),
		DurationSeconds: outcome.DurationSeconds,
		SourceCount:     outcome.SourceCount,
		WorkflowID:      outcome.WorkflowID,
		IsFollowup:      outcome.IsFollowup,
	}, nil
}

// handleHistory handles the history tool invocation.
func (s *Server) handleHistory(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	entries := s.ports.History.List()
	if len(entries) > limit {
		entries = entries[:limit]
	}

	output := HistoryOutput{
		Entries: make([]HistoryEntryOutput, len(entries)),
		Count:   len(entries),
	}
	for i := range entries {
		output.Entries[i] = entryOutput(&entries[i])
	}

	return nil, output, nil
}

// handleMetrics handles the metrics tool invocation.
func (s *Server) handleMetrics(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ MetricsInput,
) (*mcp.CallToolResult, domain.MetricsSnapshot, error) {
	return nil, s.ports.Metrics.RefreshFromRemote(ctx), nil
}

func entryOutput(q *domain.Query) HistoryEntryOutput {
	return HistoryEntryOutput{
		ID:        q.ID,
		Question:  q.ListingQuestion(),
		Timestamp: q.Timestamp.Format(time.RFC3339),
		Origin:    string(q.Origin.Kind),
		Duration:  q.DurationLabel(),
		Sources:   q.SourcesLabel(),
		Workflow:  q.WorkflowLabel(),
		Artifact:  q.Origin.ArtifactName,
	}
}

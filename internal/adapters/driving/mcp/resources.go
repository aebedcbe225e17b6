package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/iajur-cli/internal/core/render"
)

const (
	// uriScheme is the custom URI scheme for IA-JUR resources.
	uriScheme = "iajur://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Consultation history, most recent first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "history/{queryId}",
		Name:        "history-entry",
		Description: "Question and answer text of one consultation",
		MIMEType:    "text/plain",
	}, s.handleEntryResource)
}

// handleHistoryResource returns the whole history log.
func (s *Server) handleHistoryResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	entries := s.ports.History.List()

	infos := make([]HistoryEntryOutput, len(entries))
	for i := range entries {
		infos[i] = entryOutput(&entries[i])
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling history: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleEntryResource returns the text of one history entry.
func (s *Server) handleEntryResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractQueryID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	q, err := s.ports.History.Lookup(id)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Pergunta: %s\n", q.Question)
	fmt.Fprintf(&b, "%s\n\n", render.EntryDetails(q))
	switch {
	case q.Body != "":
		b.WriteString(q.Body)
	case !q.Answer.IsEmpty():
		b.WriteString(render.Flatten(q.Answer, q.Question))
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     b.String(),
		}},
	}, nil
}

// extractQueryID extracts the query ID from a URI like iajur://history/{queryId}.
func extractQueryID(uri string) string {
	const prefix = uriScheme + "history/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}

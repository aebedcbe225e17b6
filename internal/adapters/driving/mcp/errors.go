// Package mcp provides an MCP (Model Context Protocol) server adapter for IA-JUR.
// It lets AI assistants consult the legal research service and read the
// local consultation history.
package mcp

import "errors"

var (
	// ErrMissingController is returned when the query controller is not provided.
	ErrMissingController = errors.New("mcp: query controller is required")

	// ErrMissingHistoryService is returned when the history service is not provided.
	ErrMissingHistoryService = errors.New("mcp: history service is required")
)

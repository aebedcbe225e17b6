package tui

import "errors"

// ErrMissingController is returned when the query controller is not provided.
var ErrMissingController = errors.New("tui: query controller is required")

// ErrMissingHistoryService is returned when the history service is not provided.
var ErrMissingHistoryService = errors.New("tui: history service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")

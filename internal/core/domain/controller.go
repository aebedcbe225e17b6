package domain

import "strconv"

// ControllerState is the query lifecycle state.
type ControllerState string

const (
	// StateIdle accepts a new submit.
	StateIdle ControllerState = "idle"

	// StateSubmitting waits for the answering service.
	StateSubmitting ControllerState = "submitting"

	// StateRendering turns the response into display blocks and records it.
	StateRendering ControllerState = "rendering"

	// StateFailed holds the last transport error. It accepts a new submit
	// exactly like StateIdle.
	StateFailed ControllerState = "failed"
)

// String returns the string representation.
func (s ControllerState) String() string {
	return string(s)
}

// AcceptsSubmit reports whether a submit may start from this state.
func (s ControllerState) AcceptsSubmit() bool {
	return s == StateIdle || s == StateFailed
}

// QueryOutcome is the display state produced by one successful query.
type QueryOutcome struct {
	// Query is the history entry recorded for this response.
	Query Query `json:"query"`

	// Blocks is the rendered answer.
	Blocks []DisplayBlock `json:"blocks"`

	DurationSeconds float64 `json:"duration_seconds"`
	SourceCount     int     `json:"source_count"`
	WorkflowID      string  `json:"workflow_id"`
	IsFollowup      bool    `json:"is_followup"`
}

// DurationLabel formats the duration with two decimals.
func (o *QueryOutcome) DurationLabel() string {
	return formatSeconds(o.DurationSeconds)
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

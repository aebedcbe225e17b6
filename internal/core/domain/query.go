package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// MaxHistoryEntries bounds the history log. Truncation drops the tail.
const MaxHistoryEntries = 50

// OriginKind identifies where a history entry came from.
type OriginKind string

const (
	// OriginInteractive is a query submitted by the user in this client.
	OriginInteractive OriginKind = "interactive"

	// OriginPersistedArtifact is a server-side saved answer file.
	OriginPersistedArtifact OriginKind = "persisted_artifact"
)

// Origin is Interactive | PersistedArtifact{artifactName, sizeBytes, createdAt}.
type Origin struct {
	Kind OriginKind `json:"kind"`

	// ArtifactName is the identity key of a persisted artifact.
	ArtifactName string `json:"artifact_name,omitempty"`

	// SizeBytes is the artifact size reported by the server.
	SizeBytes int64 `json:"size_bytes,omitempty"`

	// CreatedAt is the artifact creation time as reported by the server.
	CreatedAt string `json:"created_at,omitempty"`
}

// InteractiveOrigin returns the origin for live queries.
func InteractiveOrigin() Origin {
	return Origin{Kind: OriginInteractive}
}

// ArtifactOrigin returns the origin for an artifact-derived entry.
func ArtifactOrigin(a Artifact) Origin {
	return Origin{
		Kind:         OriginPersistedArtifact,
		ArtifactName: a.Name,
		SizeBytes:    a.SizeBytes,
		CreatedAt:    a.CreatedAt,
	}
}

// Query is one user interaction recorded in the history log.
type Query struct {
	// ID is unique and sorts roughly by creation time.
	ID string `json:"id"`

	// Question is the user's question text.
	Question string `json:"question"`

	// Answer is the answer payload as received.
	Answer Answer `json:"answer"`

	// Body is the flattened text form of the answer used for transcripts.
	Body string `json:"body,omitempty"`

	// DurationSeconds is nil for artifact-derived entries.
	DurationSeconds *float64 `json:"duration_seconds"`

	// SourceCount is nil for artifact-derived entries.
	SourceCount *int `json:"source_count"`

	// Timestamp is an ISO-8601 instant.
	Timestamp time.Time `json:"timestamp"`

	// WorkflowID is an opaque correlation token, nil when unknown.
	WorkflowID *string `json:"workflow_id"`

	// Origin tells interactive queries from persisted artifacts.
	Origin Origin `json:"origin"`
}

// IsArtifact reports whether the entry mirrors a persisted artifact.
// Artifact entries are immutable and cannot be replayed or copied.
func (q *Query) IsArtifact() bool {
	return q.Origin.Kind == OriginPersistedArtifact
}

// DurationLabel returns the duration formatted with two decimals, or "N/A".
func (q *Query) DurationLabel() string {
	if q.DurationSeconds == nil {
		return NotAvailable
	}
	return strconv.FormatFloat(*q.DurationSeconds, 'f', 2, 64)
}

// SourcesLabel returns the source count, or "N/A".
func (q *Query) SourcesLabel() string {
	if q.SourceCount == nil {
		return NotAvailable
	}
	return strconv.Itoa(*q.SourceCount)
}

// WorkflowLabel returns the workflow id, or "N/A".
func (q *Query) WorkflowLabel() string {
	if q.WorkflowID == nil || *q.WorkflowID == "" {
		return NotAvailable
	}
	return *q.WorkflowID
}

// listingMaxRunes bounds question text in history listings.
const listingMaxRunes = 80

// ListingQuestion returns the question truncated to 80 characters with an
// ellipsis when longer.
func (q *Query) ListingQuestion() string {
	r := []rune(q.Question)
	if len(r) <= listingMaxRunes {
		return q.Question
	}
	return string(r[:listingMaxRunes]) + "..."
}

// SizeLabel returns the artifact size in KB with one decimal, e.g. "2.0 KB".
func (o Origin) SizeLabel() string {
	return strconv.FormatFloat(float64(o.SizeBytes)/1024, 'f', 1, 64) + " KB"
}

// UnmarshalJSON decodes a stored query. Durations and source counts stored
// as strings are accepted; non-numeric values such as "N/A" become nil.
func (q *Query) UnmarshalJSON(data []byte) error {
	type plain Query
	aux := struct {
		*plain
		DurationSeconds json.RawMessage `json:"duration_seconds"`
		SourceCount     json.RawMessage `json:"source_count"`
	}{plain: (*plain)(q)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	q.DurationSeconds = parseLooseFloat(aux.DurationSeconds)
	if n := parseLooseFloat(aux.SourceCount); n != nil {
		count := int(*n)
		q.SourceCount = &count
	} else {
		q.SourceCount = nil
	}
	if q.Origin.Kind == "" {
		q.Origin.Kind = OriginInteractive
	}
	return nil
}

// parseLooseFloat accepts a JSON number or a numeric JSON string.
func parseLooseFloat(raw json.RawMessage) *float64 {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}

// String returns a pointer to v.
func String(v string) *string {
	return &v
}

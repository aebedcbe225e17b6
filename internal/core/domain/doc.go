// Package domain defines the core business entities for the IA-JUR client.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Query: One user question with its answer and metadata
//   - Answer: A plain-text or structured answer payload
//   - DisplayBlock: One renderable unit of an answer
//   - MetricsSnapshot: Aggregate usage statistics
//   - Artifact: A server-held saved answer file
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - AnsweringService: Sends a question to the remote service
//   - HistoryStore: Durable single-document history persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ArtifactSource: Lists and downloads server-persisted answer files.
//     Without it, reconciliation is skipped.
//   - MetricsSource: Remote metrics snapshot. Without it, metrics are local only.
//   - Clipboard: System clipboard. Without it, copy actions fail.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven

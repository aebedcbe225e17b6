// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// QueryController owns the query lifecycle and is the only caller that
// records history and recomputes metrics after a response.
package services

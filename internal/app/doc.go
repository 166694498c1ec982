// Package app holds the QuoteFlow use cases. Services depend on ports
// only; adapters are wired in by cmd/service.
package app

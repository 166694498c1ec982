// Package ports defines the contracts between the QuoteFlow application layer
// and its adapters. Ports take a context first, speak domain types only, and
// report failures with domain errors.
package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen/quoteflow/internal/domain"
)

// QuoteSource is a remote provider of quote lists.
//
// Implementations return records exactly as the provider spells them;
// normalization happens in the resolver. Any failure is reported as a
// domain.UpstreamError.
type QuoteSource interface {
	// SourceName identifies the provider in logs, metrics and cache keys.
	SourceName() string

	// ListQuotes fetches the provider's current quote list.
	ListQuotes(ctx context.Context) ([]domain.RawQuote, error)
}

// FavoritesRepository holds the quotes a user has favorited.
type FavoritesRepository interface {
	// Add stores a record under a fresh id and marks it favorited.
	Add(ctx context.Context, record domain.QuoteRecord) (domain.Quote, error)

	// Remove deletes the quote with the given id. It reports whether a
	// quote was removed; an unknown id is not an error.
	Remove(ctx context.Context, id int64) (bool, error)

	// List returns every favorite ordered by id.
	List(ctx context.Context) ([]domain.Quote, error)

	// Get returns domain.ErrNotFound for an unknown id.
	Get(ctx context.Context, id int64) (domain.Quote, error)
}

// StatsLedger holds the process-wide usage counters.
type StatsLedger interface {
	Get(ctx context.Context) (domain.Stats, error)

	// Merge overwrites the provided fields with absolute values.
	Merge(ctx context.Context, patch domain.StatsPatch) (domain.Stats, error)

	// Increment atomically adds delta to one counter, clamping at zero.
	Increment(ctx context.Context, counter domain.Counter, delta int64) (domain.Stats, error)
}

// Cache stores opaque values with an expiry.
type Cache interface {
	// Get returns domain.ErrNotFound on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value for ttl. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete is a no-op for missing keys.
	Delete(ctx context.Context, key string) error
}

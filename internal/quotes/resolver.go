package quotes

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/jsamuelsen/quoteflow/internal/domain"
	"github.com/jsamuelsen/quoteflow/internal/platform/logging"
)

// DefaultSourceTimeout bounds a single provider call in ResolveFrom.
const DefaultSourceTimeout = 5 * time.Second

// Source is one already-fetched candidate list. A source that is not Ready,
// or has no records, is skipped.
type Source struct {
	Name    string
	Records []domain.RawQuote
	Ready   bool
}

// Provider fetches a candidate list on demand.
type Provider struct {
	Name  string
	Fetch func(ctx context.Context) ([]domain.RawQuote, error)
}

// Resolution is a picked quote together with the source that supplied it.
type Resolution struct {
	Record domain.QuoteRecord
	Source string
}

// Resolver chooses one quote from the first usable source, falling back to
// its local table. It never fails.
type Resolver struct {
	table   Table
	intn    func(n int) int
	timeout time.Duration
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTable replaces the built-in fallback table.
func WithTable(t Table) Option {
	return func(r *Resolver) {
		if len(t[domain.DefaultCategory]) > 0 {
			r.table = t
		}
	}
}

// WithRandom replaces the uniform index picker. intn must return a value
// in [0, n).
func WithRandom(intn func(n int) int) Option {
	return func(r *Resolver) {
		r.intn = intn
	}
}

// WithSourceTimeout bounds each provider call made by ResolveFrom.
func WithSourceTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewResolver creates a resolver backed by DefaultTable.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		table:   DefaultTable(),
		intn:    rand.IntN,
		timeout: DefaultSourceTimeout,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve picks a quote for category from the first ready, non-empty
// source. When none qualifies the fallback table is used. The returned
// category is always the requested one.
func (r *Resolver) Resolve(category string, sources []Source) domain.QuoteRecord {
	return r.resolve(category, sources).Record
}

// ResolveFrom calls providers lazily in order and stops at the first one
// that returns records. A provider that errors or exceeds the source
// timeout counts as not ready.
func (r *Resolver) ResolveFrom(ctx context.Context, category string, providers ...Provider) Resolution {
	logger := logging.FromContext(ctx)

	for _, p := range providers {
		records, err := r.fetch(ctx, p)
		if err != nil {
			logger.Warn("quote source not ready, trying next",
				slog.String("source", p.Name),
				slog.String("error", err.Error()),
			)

			continue
		}

		if len(records) == 0 {
			logger.Debug("quote source returned no records", slog.String("source", p.Name))
			continue
		}

		return r.resolve(category, []Source{{Name: p.Name, Records: records, Ready: true}})
	}

	return r.resolve(category, nil)
}

func (r *Resolver) fetch(ctx context.Context, p Provider) ([]domain.RawQuote, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return p.Fetch(ctx)
}

func (r *Resolver) resolve(category string, sources []Source) Resolution {
	name := FallbackSource
	records := r.table.Lookup(category)

	for _, s := range sources {
		if s.Ready && len(s.Records) > 0 {
			name = s.Name
			records = s.Records

			break
		}
	}

	picked := records[r.intn(len(records))]

	return Resolution{Record: picked.Normalize(category), Source: name}
}

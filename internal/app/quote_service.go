package app

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quoteflow/internal/domain"
	"github.com/jsamuelsen/quoteflow/internal/platform/logging"
	"github.com/jsamuelsen/quoteflow/internal/platform/metrics"
	"github.com/jsamuelsen/quoteflow/internal/ports"
	"github.com/jsamuelsen/quoteflow/internal/quotes"
)

// DefaultQuoteCacheTTL is used when QuoteServiceConfig.CacheTTL is zero.
const DefaultQuoteCacheTTL = 5 * time.Minute

// QuoteServiceConfig wires a QuoteService.
type QuoteServiceConfig struct {
	Primary   ports.QuoteSource
	Secondary ports.QuoteSource
	Cache     ports.Cache // optional
	CacheTTL  time.Duration
	Resolver  *quotes.Resolver
	Stats     *StatsService
	Metrics   *metrics.Recorder
}

// QuoteService serves upstream quote lists and resolves single quotes.
type QuoteService struct {
	primary   ports.QuoteSource
	secondary ports.QuoteSource
	cache     ports.Cache
	ttl       time.Duration
	resolver  *quotes.Resolver
	stats     *StatsService
	metrics   *metrics.Recorder
}

// NewQuoteService creates a quote service.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	s := &QuoteService{
		primary:   cfg.Primary,
		secondary: cfg.Secondary,
		cache:     cfg.Cache,
		ttl:       cfg.CacheTTL,
		resolver:  cfg.Resolver,
		stats:     cfg.Stats,
		metrics:   cfg.Metrics,
	}

	if s.ttl <= 0 {
		s.ttl = DefaultQuoteCacheTTL
	}

	if s.resolver == nil {
		s.resolver = quotes.NewResolver()
	}

	return s
}

// PrimaryQuotes returns the primary source's list.
func (s *QuoteService) PrimaryQuotes(ctx context.Context) ([]domain.RawQuote, error) {
	return s.list(ctx, s.primary)
}

// SecondaryQuotes returns the secondary source's list.
func (s *QuoteService) SecondaryQuotes(ctx context.Context) ([]domain.RawQuote, error) {
	return s.list(ctx, s.secondary)
}

// RandomQuote resolves one quote for category, trying the primary source,
// then the secondary, then the fallback table. It counts the quote as
// generated and never fails.
func (s *QuoteService) RandomQuote(ctx context.Context, category string) domain.QuoteRecord {
	if category == "" {
		category = domain.DefaultCategory
	}

	var providers []quotes.Provider

	for _, src := range []ports.QuoteSource{s.primary, s.secondary} {
		if src == nil {
			continue
		}

		providers = append(providers, quotes.Provider{
			Name:  src.SourceName(),
			Fetch: func(ctx context.Context) ([]domain.RawQuote, error) { return s.list(ctx, src) },
		})
	}

	res := s.resolver.ResolveFrom(ctx, category, providers...)
	s.metrics.QuoteResolved(res.Source)

	logger := logging.FromContext(ctx)
	logger.Debug("quote resolved",
		slog.String("source", res.Source),
		slog.String("category", category),
	)

	if s.stats != nil {
		if _, err := s.stats.Increment(ctx, domain.CounterQuotesGenerated, 1); err != nil {
			logger.Warn("counting generated quote failed", slog.String("error", err.Error()))
		}
	}

	return res.Record
}

// Warm fetches both source lists concurrently so the first requests hit
// the cache. Failures are logged and returned joined.
func (s *QuoteService) Warm(ctx context.Context) error {
	results := ParallelPartial(ctx, s.PrimaryQuotes, s.SecondaryQuotes)

	var errs []error

	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
			continue
		}

		logging.FromContext(ctx).Info("quote cache warmed", slog.Int("quotes", len(r.Value)))
	}

	return errors.Join(errs...)
}

func cacheKey(source string) string {
	return "quotes:" + source
}

// list reads src through the cache. Cache failures are logged and never
// fail the request.
func (s *QuoteService) list(ctx context.Context, src ports.QuoteSource) ([]domain.RawQuote, error) {
	if src == nil {
		return nil, domain.NewUnavailableError("quotes", "source not configured")
	}

	name := src.SourceName()
	logger := logging.FromContext(ctx).With(slog.String("source", name))

	if cached, ok := s.cached(ctx, logger, name); ok {
		return cached, nil
	}

	records, err := src.ListQuotes(ctx)
	if err != nil {
		s.metrics.SourceFailed(name)
		logger.Warn("quote source failed", slog.String("error", err.Error()))

		return nil, err
	}

	s.store(ctx, logger, name, records)

	return records, nil
}

func (s *QuoteService) cached(ctx context.Context, logger *slog.Logger, name string) ([]domain.RawQuote, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, err := s.cache.Get(ctx, cacheKey(name))
	if err != nil {
		if !domain.IsNotFound(err) {
			logger.Warn("quote cache read failed", slog.String("error", err.Error()))
		}

		return nil, false
	}

	var records []domain.RawQuote
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Warn("discarding corrupt cache entry", slog.String("error", err.Error()))
		return nil, false
	}

	return records, true
}

func (s *QuoteService) store(ctx context.Context, logger *slog.Logger, name string, records []domain.RawQuote) {
	if s.cache == nil || len(records) == 0 {
		return
	}

	data, err := json.Marshal(records)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, cacheKey(name), data, s.ttl); err != nil {
		logger.Warn("quote cache write failed", slog.String("error", err.Error()))
	}
}

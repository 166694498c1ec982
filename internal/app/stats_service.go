package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quoteflow/internal/domain"
	"github.com/jsamuelsen/quoteflow/internal/platform/logging"
	"github.com/jsamuelsen/quoteflow/internal/platform/metrics"
	"github.com/jsamuelsen/quoteflow/internal/ports"
)

// StatsService exposes the usage ledger.
type StatsService struct {
	ledger  ports.StatsLedger
	metrics *metrics.Recorder
}

// NewStatsService creates a stats service.
func NewStatsService(ledger ports.StatsLedger, rec *metrics.Recorder) *StatsService {
	return &StatsService{ledger: ledger, metrics: rec}
}

// Get returns the current counters.
func (s *StatsService) Get(ctx context.Context) (domain.Stats, error) {
	return s.ledger.Get(ctx)
}

// Merge overwrites the provided counters with absolute values.
func (s *StatsService) Merge(ctx context.Context, patch domain.StatsPatch) (domain.Stats, error) {
	if err := patch.Validate(); err != nil {
		return domain.Stats{}, err
	}

	stats, err := s.ledger.Merge(ctx, patch)
	if err != nil {
		return domain.Stats{}, err
	}

	logging.FromContext(ctx).Info("stats merged",
		slog.Int64("quotes_generated", stats.QuotesGenerated),
		slog.Int64("favorite_quotes", stats.FavoriteQuotes),
		slog.Int64("wallpapers_saved", stats.WallpapersSaved),
	)

	return stats, nil
}

// Increment adds delta to counter, clamping at zero.
func (s *StatsService) Increment(ctx context.Context, counter domain.Counter, delta int64) (domain.Stats, error) {
	if _, err := domain.ParseCounter(string(counter)); err != nil {
		return domain.Stats{}, err
	}

	stats, err := s.ledger.Increment(ctx, counter, delta)
	if err != nil {
		return domain.Stats{}, err
	}

	s.metrics.CounterUpdated(string(counter), delta)

	return stats, nil
}

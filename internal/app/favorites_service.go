package app

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/jsamuelsen/quoteflow/internal/domain"
	"github.com/jsamuelsen/quoteflow/internal/platform/logging"
	"github.com/jsamuelsen/quoteflow/internal/platform/metrics"
	"github.com/jsamuelsen/quoteflow/internal/ports"
)

// FavoritesService keeps favorites and the favoriteQuotes counter in step.
type FavoritesService struct {
	repo    ports.FavoritesRepository
	stats   *StatsService
	metrics *metrics.Recorder
}

// NewFavoritesService creates a favorites service.
func NewFavoritesService(repo ports.FavoritesRepository, stats *StatsService, rec *metrics.Recorder) *FavoritesService {
	return &FavoritesService{repo: repo, stats: stats, metrics: rec}
}

// Add stores record as a favorite and increments favoriteQuotes.
func (s *FavoritesService) Add(ctx context.Context, record domain.QuoteRecord) (domain.Quote, error) {
	if err := record.Validate(); err != nil {
		return domain.Quote{}, err
	}

	q, err := s.repo.Add(ctx, record)
	if err != nil {
		return domain.Quote{}, err
	}

	logging.FromContext(ctx).Info("favorite added", slog.Int64("quote_id", q.ID))
	s.count(ctx, 1)

	return q, nil
}

// Remove deletes a favorite. Removing an unknown id succeeds without
// touching the counter.
func (s *FavoritesService) Remove(ctx context.Context, id int64) error {
	removed, err := s.repo.Remove(ctx, id)
	if err != nil {
		return err
	}

	logger := logging.FromContext(ctx).With(slog.String("quote_id", strconv.FormatInt(id, 10)))

	if !removed {
		logger.Debug("favorite not found, nothing removed")
		return nil
	}

	logger.Info("favorite removed")
	s.count(ctx, -1)

	return nil
}

// Get returns one favorite, or a NotFound error.
func (s *FavoritesService) Get(ctx context.Context, id int64) (domain.Quote, error) {
	return s.repo.Get(ctx, id)
}

// List returns every favorite ordered by id.
func (s *FavoritesService) List(ctx context.Context) ([]domain.Quote, error) {
	return s.repo.List(ctx)
}

func (s *FavoritesService) count(ctx context.Context, delta int64) {
	if s.stats != nil {
		if _, err := s.stats.Increment(ctx, domain.CounterFavoriteQuotes, delta); err != nil {
			logging.FromContext(ctx).Warn("updating favorite counter failed", slog.String("error", err.Error()))
		}
	}

	if all, err := s.repo.List(ctx); err == nil {
		s.metrics.FavoritesStored(len(all))
	}
}

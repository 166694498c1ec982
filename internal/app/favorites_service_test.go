package app

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quoteflow/internal/adapters/memory"
	"github.com/jsamuelsen/quoteflow/internal/domain"
	"github.com/jsamuelsen/quoteflow/internal/platform/metrics"
)

func newFavorites(t *testing.T) (*FavoritesService, *memory.StatsLedger, *prometheus.Registry) {
	t.Helper()

	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)
	ledger := memory.NewStatsLedger()

	return NewFavoritesService(memory.NewFavoritesStore(), NewStatsService(ledger, rec), rec), ledger, reg
}

func TestFavoritesService_AddListRemove(t *testing.T) {
	svc, ledger, reg := newFavorites(t)
	ctx := t.Context()

	record := domain.QuoteRecord{Text: "Stay hungry, stay foolish.", Author: "Steve Jobs", Category: "inspirational"}

	q, err := svc.Add(ctx, record)
	require.NoError(t, err)
	assert.True(t, q.IsFavorite)
	assert.Equal(t, record, q.Record())

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, q.ID, list[0].ID)

	stats, _ := ledger.Get(ctx)
	assert.Equal(t, int64(1), stats.FavoriteQuotes)
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP quoteflow_favorites_stored Favorite quotes currently stored.
# TYPE quoteflow_favorites_stored gauge
quoteflow_favorites_stored 1
`), "quoteflow_favorites_stored"))

	require.NoError(t, svc.Remove(ctx, q.ID))

	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	stats, _ = ledger.Get(ctx)
	assert.Equal(t, int64(0), stats.FavoriteQuotes)
}

func TestFavoritesService_Get(t *testing.T) {
	svc, _, _ := newFavorites(t)
	ctx := t.Context()

	q, err := svc.Add(ctx, domain.QuoteRecord{Text: "a", Author: "b", Category: "life"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q, got)

	_, err = svc.Get(ctx, q.ID+1)
	assert.True(t, domain.IsNotFound(err))

	require.NoError(t, svc.Remove(ctx, q.ID))
	_, err = svc.Get(ctx, q.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestFavoritesService_RemoveUnknownLeavesCounter(t *testing.T) {
	svc, ledger, _ := newFavorites(t)
	ctx := t.Context()

	_, err := svc.Add(ctx, domain.QuoteRecord{Text: "a", Author: "b", Category: "life"})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, 999))

	stats, _ := ledger.Get(ctx)
	assert.Equal(t, int64(1), stats.FavoriteQuotes)
}

func TestFavoritesService_AddRejectsEmptyFields(t *testing.T) {
	svc, ledger, _ := newFavorites(t)

	_, err := svc.Add(t.Context(), domain.QuoteRecord{Text: "  ", Author: "b", Category: "life"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	stats, _ := ledger.Get(t.Context())
	assert.Zero(t, stats.FavoriteQuotes)
}

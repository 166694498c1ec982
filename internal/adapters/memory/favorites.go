// Package memory holds process-local implementations of the QuoteFlow
// repositories. State lives for the lifetime of the process.
package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/jsamuelsen/quoteflow/internal/domain"
	"github.com/jsamuelsen/quoteflow/internal/ports"
)

var _ ports.FavoritesRepository = (*FavoritesStore)(nil)

// FavoritesStore keeps favorited quotes in a map keyed by id. Ids start at
// 1, increase monotonically and are never reused.
type FavoritesStore struct {
	mu     sync.Mutex
	quotes map[int64]domain.Quote
	nextID int64
	now    func() time.Time
}

// NewFavoritesStore creates an empty store.
func NewFavoritesStore() *FavoritesStore {
	return &FavoritesStore{
		quotes: make(map[int64]domain.Quote),
		nextID: 1,
		now:    time.Now,
	}
}

// Add implements ports.FavoritesRepository.
func (s *FavoritesStore) Add(_ context.Context, record domain.QuoteRecord) (domain.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := domain.Quote{
		ID:         s.nextID,
		Text:       record.Text,
		Author:     record.Author,
		Category:   record.Category,
		IsFavorite: true,
		CreatedAt:  s.now(),
	}

	s.quotes[q.ID] = q
	s.nextID++

	return q, nil
}

// Remove implements ports.FavoritesRepository.
func (s *FavoritesStore) Remove(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.quotes[id]; !ok {
		return false, nil
	}

	delete(s.quotes, id)

	return true, nil
}

// List implements ports.FavoritesRepository.
func (s *FavoritesStore) List(_ context.Context) ([]domain.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.SortedFunc(maps.Values(s.quotes), func(a, b domain.Quote) int {
		return cmp.Compare(a.ID, b.ID)
	}), nil
}

// Get implements ports.FavoritesRepository.
func (s *FavoritesStore) Get(_ context.Context, id int64) (domain.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.quotes[id]
	if !ok {
		return domain.Quote{}, domain.NewNotFoundError("favorite", strconv.FormatInt(id, 10))
	}

	return q, nil
}

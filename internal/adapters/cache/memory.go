// Package cache provides ports.Cache implementations used to keep upstream
// quote lists between requests.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jsamuelsen/quoteflow/internal/domain"
	"github.com/jsamuelsen/quoteflow/internal/ports"
)

var _ ports.Cache = (*Memory)(nil)

type entry struct {
	value     []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Memory is a process-local cache. Expired entries are dropped lazily on read.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemory creates an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get implements ports.Cache.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, domain.NewNotFoundError("cache entry", key)
	}

	if e.expired(m.now()) {
		delete(m.entries, key)
		return nil, domain.NewNotFoundError("cache entry", key)
	}

	return append([]byte(nil), e.value...), nil
}

// Set implements ports.Cache.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}

	m.entries[key] = e

	return nil
}

// Delete implements ports.Cache.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)

	return nil
}

package memory

import (
	"context"
	"sync"

	"github.com/jsamuelsen/quoteflow/internal/domain"
	"github.com/jsamuelsen/quoteflow/internal/ports"
)

var _ ports.StatsLedger = (*StatsLedger)(nil)

// StatsLedger is the singleton usage counter set. It starts at zero.
type StatsLedger struct {
	mu    sync.Mutex
	stats domain.Stats
}

// NewStatsLedger creates a zeroed ledger.
func NewStatsLedger() *StatsLedger {
	return &StatsLedger{}
}

// Get implements ports.StatsLedger.
func (l *StatsLedger) Get(_ context.Context) (domain.Stats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.stats, nil
}

// Merge implements ports.StatsLedger.
func (l *StatsLedger) Merge(_ context.Context, patch domain.StatsPatch) (domain.Stats, error) {
	if err := patch.Validate(); err != nil {
		return domain.Stats{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.stats = patch.Apply(l.stats)

	return l.stats, nil
}

// Increment implements ports.StatsLedger.
func (l *StatsLedger) Increment(_ context.Context, counter domain.Counter, delta int64) (domain.Stats, error) {
	if _, err := domain.ParseCounter(string(counter)); err != nil {
		return domain.Stats{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.stats = l.stats.Add(counter, delta)

	return l.stats, nil
}

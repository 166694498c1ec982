package domain

import (
	"fmt"
	"math"
)

// Counter names one of the usage counters in Stats.
type Counter string

// Counters tracked by the stats ledger.
const (
	CounterQuotesGenerated Counter = "quotesGenerated"
	CounterFavoriteQuotes  Counter = "favoriteQuotes"
	CounterWallpapersSaved Counter = "wallpapersSaved"
)

// ParseCounter maps a wire name onto a Counter.
func ParseCounter(name string) (Counter, error) {
	switch c := Counter(name); c {
	case CounterQuotesGenerated, CounterFavoriteQuotes, CounterWallpapersSaved:
		return c, nil
	default:
		return "", NewValidationErrorWithValue("counter", fmt.Sprintf("unknown counter %q", name), name)
	}
}

// Stats is the process-wide usage ledger. Every counter is >= 0.
type Stats struct {
	QuotesGenerated int64
	FavoriteQuotes  int64
	WallpapersSaved int64
}

// Value returns the current value of a counter.
func (s Stats) Value(c Counter) int64 {
	switch c {
	case CounterQuotesGenerated:
		return s.QuotesGenerated
	case CounterFavoriteQuotes:
		return s.FavoriteQuotes
	case CounterWallpapersSaved:
		return s.WallpapersSaved
	default:
		return 0
	}
}

// Add applies delta to a counter. The sum saturates at math.MaxInt64 and
// is clamped at zero.
func (s Stats) Add(c Counter, delta int64) Stats {
	set := func(v *int64) {
		*v = max(saturatingAdd(*v, delta), 0)
	}

	switch c {
	case CounterQuotesGenerated:
		set(&s.QuotesGenerated)
	case CounterFavoriteQuotes:
		set(&s.FavoriteQuotes)
	case CounterWallpapersSaved:
		set(&s.WallpapersSaved)
	}

	return s
}

func saturatingAdd(v, delta int64) int64 {
	switch {
	case delta > 0 && v > math.MaxInt64-delta:
		return math.MaxInt64
	case delta < 0 && v < math.MinInt64-delta:
		return math.MinInt64
	default:
		return v + delta
	}
}

// StatsPatch carries absolute values for a partial stats update.
// Nil fields are left untouched.
type StatsPatch struct {
	QuotesGenerated *int64
	FavoriteQuotes  *int64
	WallpapersSaved *int64
}

// Validate rejects negative values.
func (p StatsPatch) Validate() error {
	fields := []struct {
		name string
		v    *int64
	}{
		{string(CounterQuotesGenerated), p.QuotesGenerated},
		{string(CounterFavoriteQuotes), p.FavoriteQuotes},
		{string(CounterWallpapersSaved), p.WallpapersSaved},
	}

	for _, f := range fields {
		if f.v != nil && *f.v < 0 {
			return NewValidationErrorWithValue(f.name, "must be a non-negative integer", *f.v)
		}
	}

	return nil
}

// Apply overwrites the provided fields of s.
func (p StatsPatch) Apply(s Stats) Stats {
	if p.QuotesGenerated != nil {
		s.QuotesGenerated = *p.QuotesGenerated
	}

	if p.FavoriteQuotes != nil {
		s.FavoriteQuotes = *p.FavoriteQuotes
	}

	if p.WallpapersSaved != nil {
		s.WallpapersSaved = *p.WallpapersSaved
	}

	return s
}

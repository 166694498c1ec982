package dto

import "github.com/jsamuelsen/quoteflow/internal/domain"

// StatsResponse is the usage ledger.
type StatsResponse struct {
	QuotesGenerated int64 `json:"quotesGenerated"`
	FavoriteQuotes  int64 `json:"favoriteQuotes"`
	WallpapersSaved int64 `json:"wallpapersSaved"`
}

// NewStatsResponse converts domain stats.
func NewStatsResponse(s domain.Stats) StatsResponse {
	return StatsResponse{
		QuotesGenerated: s.QuotesGenerated,
		FavoriteQuotes:  s.FavoriteQuotes,
		WallpapersSaved: s.WallpapersSaved,
	}
}

// StatsPatchRequest carries absolute values; omitted fields are kept.
type StatsPatchRequest struct {
	QuotesGenerated *int64 `json:"quotesGenerated" validate:"omitnil,gte=0"`
	FavoriteQuotes  *int64 `json:"favoriteQuotes" validate:"omitnil,gte=0"`
	WallpapersSaved *int64 `json:"wallpapersSaved" validate:"omitnil,gte=0"`
}

// Patch converts the request to a domain patch.
func (r StatsPatchRequest) Patch() domain.StatsPatch {
	return domain.StatsPatch{
		QuotesGenerated: r.QuotesGenerated,
		FavoriteQuotes:  r.FavoriteQuotes,
		WallpapersSaved: r.WallpapersSaved,
	}
}

// IncrementRequest bumps one counter. Delta defaults to 1 and is bounded
// to +/-1,000,000 per request.
type IncrementRequest struct {
	Counter string `json:"counter" validate:"required,oneof=quotesGenerated favoriteQuotes wallpapersSaved"`
	Delta   *int64 `json:"delta" validate:"omitnil,gte=-1000000,lte=1000000"`
}

// Amount returns the requested delta.
func (r IncrementRequest) Amount() int64 {
	if r.Delta == nil {
		return 1
	}

	return *r.Delta
}

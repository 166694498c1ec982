package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawQuote_Normalize(t *testing.T) {
	tests := []struct {
		name string
		raw  RawQuote
		want QuoteRecord
	}{
		{
			name: "short aliases",
			raw:  RawQuote{Q: "Be yourself.", A: "Oscar Wilde"},
			want: QuoteRecord{Text: "Be yourself.", Author: "Oscar Wilde", Category: "funny"},
		},
		{
			name: "long aliases",
			raw:  RawQuote{Text: "Know thyself.", Author: "Socrates"},
			want: QuoteRecord{Text: "Know thyself.", Author: "Socrates", Category: "funny"},
		},
		{
			name: "short alias wins over long",
			raw:  RawQuote{Q: "short", Text: "long", A: "a", Author: "author"},
			want: QuoteRecord{Text: "short", Author: "a", Category: "funny"},
		},
		{
			name: "missing fields get defaults",
			raw:  RawQuote{},
			want: QuoteRecord{Text: DefaultQuoteText, Author: DefaultQuoteAuthor, Category: "funny"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.raw.Normalize("funny"))
		})
	}
}

func TestQuoteRecord_Validate(t *testing.T) {
	require.NoError(t, QuoteRecord{Text: "t", Author: "a", Category: "c"}.Validate())

	err := QuoteRecord{Text: "t", Author: "  ", Category: "c"}.Validate()

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "author", validation.Field)
}

func TestQuote_Record(t *testing.T) {
	q := Quote{ID: 3, Text: "t", Author: "a", Category: "c", IsFavorite: true, CreatedAt: time.Now()}

	assert.Equal(t, QuoteRecord{Text: "t", Author: "a", Category: "c"}, q.Record())
}

func TestStats_Add(t *testing.T) {
	s := Stats{QuotesGenerated: 2, FavoriteQuotes: 1}

	s = s.Add(CounterQuotesGenerated, 3)
	assert.Equal(t, int64(5), s.QuotesGenerated)

	s = s.Add(CounterFavoriteQuotes, -4)
	assert.Equal(t, int64(0), s.FavoriteQuotes, "counters clamp at zero")

	s = s.Add(Counter("bogus"), 10)
	assert.Equal(t, Stats{QuotesGenerated: 5}, s)
}

func TestStats_AddSaturates(t *testing.T) {
	s := Stats{QuotesGenerated: math.MaxInt64, WallpapersSaved: 5, FavoriteQuotes: 3}

	s = s.Add(CounterQuotesGenerated, 1)
	assert.Equal(t, int64(math.MaxInt64), s.QuotesGenerated, "overflow must not reset the counter")

	s = s.Add(CounterWallpapersSaved, math.MaxInt64)
	assert.Equal(t, int64(math.MaxInt64), s.WallpapersSaved)

	s = s.Add(CounterFavoriteQuotes, math.MinInt64)
	assert.Zero(t, s.FavoriteQuotes)
}

func TestStatsPatch(t *testing.T) {
	seven := int64(7)
	negative := int64(-1)

	merged := StatsPatch{WallpapersSaved: &seven}.Apply(Stats{QuotesGenerated: 3})
	assert.Equal(t, Stats{QuotesGenerated: 3, WallpapersSaved: 7}, merged)

	require.NoError(t, StatsPatch{}.Validate())
	assert.True(t, IsValidation(StatsPatch{FavoriteQuotes: &negative}.Validate()))
}

func TestParseCounter(t *testing.T) {
	c, err := ParseCounter("wallpapersSaved")
	require.NoError(t, err)
	assert.Equal(t, CounterWallpapersSaved, c)
	assert.Equal(t, int64(4), Stats{WallpapersSaved: 4}.Value(c))

	_, err = ParseCounter("downloads")
	assert.True(t, IsValidation(err))
}

package domain

import (
	"strings"
	"time"
)

// Category names understood by the fallback table. Any other string is
// accepted as a category and resolved against DefaultCategory.
const (
	CategoryMotivational  = "motivational"
	CategoryFunny         = "funny"
	CategoryInspirational = "inspirational"
	CategoryLife          = "life"
	CategoryWisdom        = "wisdom"

	DefaultCategory = CategoryMotivational
)

// Substitutes used when a source record carries neither text alias or
// neither author alias.
const (
	DefaultQuoteText   = "The only way to do great work is to love what you do."
	DefaultQuoteAuthor = "Steve Jobs"
)

// QuoteRecord is a transient quote with no identity. It is what the
// resolver produces and what the renderer and share formatter consume.
type QuoteRecord struct {
	Text     string
	Author   string
	Category string
}

// Validate reports the first empty field.
func (r QuoteRecord) Validate() error {
	switch {
	case strings.TrimSpace(r.Text) == "":
		return NewValidationError("text", "must not be empty")
	case strings.TrimSpace(r.Author) == "":
		return NewValidationError("author", "must not be empty")
	case strings.TrimSpace(r.Category) == "":
		return NewValidationError("category", "must not be empty")
	}

	return nil
}

// Quote is a favorited quote held by the favorites store.
type Quote struct {
	ID         int64
	Text       string
	Author     string
	Category   string
	IsFavorite bool
	CreatedAt  time.Time
}

// Record drops the identity of a stored quote.
func (q Quote) Record() QuoteRecord {
	return QuoteRecord{Text: q.Text, Author: q.Author, Category: q.Category}
}

// RawQuote is one upstream record before normalization. ZenQuotes uses the
// short aliases Q and A; Type.fit uses Text and Author.
type RawQuote struct {
	Q      string
	A      string
	Text   string
	Author string
}

// Normalize resolves aliases, preferring the short form, and substitutes
// the default text or author when both aliases are empty.
func (r RawQuote) Normalize(category string) QuoteRecord {
	return QuoteRecord{
		Text:     firstNonEmpty(r.Q, r.Text, DefaultQuoteText),
		Author:   firstNonEmpty(r.A, r.Author, DefaultQuoteAuthor),
		Category: category,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

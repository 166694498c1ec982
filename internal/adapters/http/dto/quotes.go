package dto

import (
	"time"

	"github.com/jsamuelsen/quoteflow/internal/domain"
	"github.com/jsamuelsen/quoteflow/internal/share"
)

// QuoteRequest is a quote submitted by the client.
type QuoteRequest struct {
	Text     string `json:"text" validate:"required,notblank"`
	Author   string `json:"author" validate:"required,notblank"`
	Category string `json:"category" validate:"required,notblank"`
}

// Record converts the request to a domain record.
func (r QuoteRequest) Record() domain.QuoteRecord {
	return domain.QuoteRecord{Text: r.Text, Author: r.Author, Category: r.Category}
}

// SourceQuote is one entry of an upstream quote list.
type SourceQuote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// NewSourceQuotes normalizes an upstream list.
func NewSourceQuotes(raw []domain.RawQuote) []SourceQuote {
	out := make([]SourceQuote, 0, len(raw))
	for _, r := range raw {
		rec := r.Normalize("")
		out = append(out, SourceQuote{Text: rec.Text, Author: rec.Author})
	}

	return out
}

// QuoteRecordResponse is a resolved quote without identity.
type QuoteRecordResponse struct {
	Text     string `json:"text"`
	Author   string `json:"author"`
	Category string `json:"category"`
}

// NewQuoteRecordResponse converts a domain record.
func NewQuoteRecordResponse(r domain.QuoteRecord) QuoteRecordResponse {
	return QuoteRecordResponse{Text: r.Text, Author: r.Author, Category: r.Category}
}

// FavoriteResponse is a stored favorite.
type FavoriteResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	Author     string    `json:"author"`
	Category   string    `json:"category"`
	IsFavorite bool      `json:"isFavorite"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewFavoriteResponse converts a domain quote.
func NewFavoriteResponse(q domain.Quote) FavoriteResponse {
	return FavoriteResponse{
		ID:         q.ID,
		Text:       q.Text,
		Author:     q.Author,
		Category:   q.Category,
		IsFavorite: q.IsFavorite,
		CreatedAt:  q.CreatedAt,
	}
}

// NewFavoriteResponses converts a list, never returning nil.
func NewFavoriteResponses(qs []domain.Quote) []FavoriteResponse {
	out := make([]FavoriteResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, NewFavoriteResponse(q))
	}

	return out
}

// SuccessResponse acknowledges a mutation with no body of its own.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ShareRequest asks for a share payload.
type ShareRequest struct {
	QuoteRequest
	Target  string `json:"target" validate:"required,notblank"`
	PageURL string `json:"pageUrl" validate:"omitempty,url"`
}

// ShareResponse tells the client how to share.
type ShareResponse struct {
	Action  string `json:"action"`
	Payload string `json:"payload"`
}

// NewShareResponse converts a share payload.
func NewShareResponse(p share.Payload) ShareResponse {
	return ShareResponse{Action: string(p.Action), Payload: p.Payload}
}

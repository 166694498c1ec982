package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quoteflow/internal/domain"
	"github.com/jsamuelsen/quoteflow/internal/share"
)

var jobs = domain.QuoteRecord{Text: "Stay hungry, stay foolish.", Author: "Steve Jobs", Category: "inspirational"}

func TestShareService_UsesDefaultPageURL(t *testing.T) {
	svc := NewShareService("https://quotes.example/")

	p, err := svc.Share(t.Context(), jobs, "facebook", "")
	require.NoError(t, err)

	assert.Equal(t, share.ActionOpenURL, p.Action)
	assert.Contains(t, p.Payload, "u=https%3A%2F%2Fquotes.example%2F")
}

func TestShareService_RequestPageURLWins(t *testing.T) {
	svc := NewShareService("https://quotes.example/")

	p, err := svc.Share(t.Context(), jobs, "facebook", "https://other.example/q/1")
	require.NoError(t, err)
	assert.Contains(t, p.Payload, "u=https%3A%2F%2Fother.example%2Fq%2F1")
}

func TestShareService_Clipboard(t *testing.T) {
	p, err := NewShareService("").Share(t.Context(), jobs, "clipboard", "")
	require.NoError(t, err)

	assert.Equal(t, share.ActionCopyText, p.Action)
	assert.Equal(t, share.Text(jobs), p.Payload)
}

func TestShareService_Rejects(t *testing.T) {
	svc := NewShareService("")

	_, err := svc.Share(t.Context(), jobs, "myspace", "")
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Share(t.Context(), domain.QuoteRecord{Text: "x"}, "twitter", "")
	assert.True(t, domain.IsValidation(err))
}

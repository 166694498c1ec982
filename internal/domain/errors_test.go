package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrValidation,
		ErrUnavailable,
		ErrUpstream,
		ErrRender,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b,
					"sentinels should be distinct: %v vs %v", a, b)
			}
		}
	}
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name        string
		entity      string
		id          string
		expectedMsg string
	}{
		{
			name:        "with entity and ID",
			entity:      "favorite",
			id:          "7",
			expectedMsg: `favorite with id "7" not found`,
		},
		{
			name:        "with entity only",
			entity:      "favorite",
			expectedMsg: "favorite not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewNotFoundError(tt.entity, tt.id)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrNotFound)

			var notFound *NotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, tt.id, notFound.ID)
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationErrorWithValue("wallpapersSaved", "must be a non-negative integer", int64(-1))

	assert.Equal(t, "validation failed for wallpapersSaved: must be a non-negative integer", err.Error())
	require.ErrorIs(t, err, ErrValidation)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, int64(-1), validation.Value)

	assert.Equal(t, "validation failed: bad", NewValidationError("", "bad").Error())
}

func TestUnavailableError(t *testing.T) {
	assert.Equal(t, `service "redis" unavailable: connection refused`,
		NewUnavailableError("redis", "connection refused").Error())
	assert.Equal(t, `service "redis" unavailable`, NewUnavailableError("redis", "").Error())
}

func TestUpstreamError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewUpstreamError("zenquotes", "failed to fetch quotes", cause)

	assert.Equal(t, "zenquotes: failed to fetch quotes: dial tcp: connection refused", err.Error())
	require.ErrorIs(t, err, ErrUpstream)
	require.ErrorIs(t, err, cause)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "zenquotes", upstream.Source)

	bare := NewUpstreamError("typefit", "unexpected status 503", nil)
	assert.Equal(t, "typefit: unexpected status 503", bare.Error())
	assert.True(t, IsUpstream(bare))
}

func TestRenderError(t *testing.T) {
	cause := errors.New("png: invalid format")
	err := NewRenderError("encode", cause)

	assert.Equal(t, "render encode: png: invalid format", err.Error())
	require.ErrorIs(t, err, ErrRender)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "render verify failed", NewRenderError("verify", nil).Error())
}

func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		isFunc   func(error) bool
		expected bool
	}{
		{"IsNotFound with NotFoundError", NewNotFoundError("favorite", "1"), IsNotFound, true},
		{"IsNotFound with wrapped", fmt.Errorf("wrapped: %w", ErrNotFound), IsNotFound, true},
		{"IsNotFound with other error", ErrValidation, IsNotFound, false},
		{"IsNotFound with nil", nil, IsNotFound, false},

		{"IsValidation with ValidationError", NewValidationError("text", "empty"), IsValidation, true},
		{"IsValidation with other error", ErrNotFound, IsValidation, false},

		{"IsUnavailable with UnavailableError", NewUnavailableError("redis", "down"), IsUnavailable, true},
		{"IsUnavailable with nil", nil, IsUnavailable, false},

		{"IsUpstream with wrapped", fmt.Errorf("outer: %w", NewUpstreamError("a", "b", nil)), IsUpstream, true},
		{"IsUpstream with render error", NewRenderError("draw", nil), IsUpstream, false},

		{"IsRender with RenderError", NewRenderError("draw", nil), IsRender, true},
		{"IsRender with nil", nil, IsRender, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.isFunc(tt.err))
		})
	}
}

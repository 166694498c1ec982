package dto

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quoteflow/internal/domain"
	"github.com/jsamuelsen/quoteflow/internal/share"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "validation",
			err:        domain.NewValidationError("author", "must not be empty"),
			wantCode:   ErrorCodeValidation,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "upstream",
			err:        domain.NewUpstreamError("zenquotes", "unexpected status 502", nil),
			wantCode:   ErrorCodeUpstream,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "failed to fetch quotes from zenquotes",
		},
		{
			name:       "render",
			err:        fmt.Errorf("wallpaper.create: perform: %w", domain.NewRenderError("encode", nil)),
			wantCode:   ErrorCodeRenderFailed,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "not found",
			err:        domain.NewNotFoundError("quote", "7"),
			wantCode:   ErrorCodeNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unavailable",
			err:        domain.NewUnavailableError("redis", "connection refused"),
			wantCode:   ErrorCodeUnavailable,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "deadline",
			err:        fmt.Errorf("render: %w", context.DeadlineExceeded),
			wantCode:   ErrorCodeTimeout,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "unknown",
			err:        errors.New("secret path /etc/passwd"),
			wantCode:   ErrorCodeInternal,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "an internal error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := MapError(tt.err)

			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantStatus, HTTPStatusFromCode(resp.Error.Code))

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, resp.Error.Message)
			}
		})
	}
}

func TestMapError_ValidationDetails(t *testing.T) {
	resp := MapError(domain.NewValidationError("counter", `unknown counter "visits"`))

	assert.Equal(t, map[string]string{"counter": `unknown counter "visits"`}, resp.Error.Details)
}

func TestHandleError_WritesEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/quotes", nil)

	HandleError(c, domain.NewUpstreamError("typefit", "request failed", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrorCodeUpstream, body.Error.Code)
	assert.Empty(t, body.TraceID)
}

func TestAbortWithCode(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/favorites/abc", nil)

	AbortWithCode(c, ErrorCodeBadRequest, "Invalid quote ID")

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid quote ID")
}

func bind(t *testing.T, body string, v any) error {
	t.Helper()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	return BindAndValidate(c, v)
}

func TestBindAndValidate_QuoteRequest(t *testing.T) {
	var ok QuoteRequest
	require.NoError(t, bind(t, `{"text":"Be water.","author":"Bruce Lee","category":"wisdom"}`, &ok))
	assert.Equal(t, domain.QuoteRecord{Text: "Be water.", Author: "Bruce Lee", Category: "wisdom"}, ok.Record())

	var blank QuoteRequest
	err := bind(t, `{"text":"  ","author":"Bruce Lee"}`, &blank)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, map[string]string{
		"text":     "must not be empty",
		"category": "this field is required",
	}, FieldErrors(err))
}

func TestBindAndValidate_StatsPatch(t *testing.T) {
	var partial StatsPatchRequest
	require.NoError(t, bind(t, `{"wallpapersSaved":4}`, &partial))

	patch := partial.Patch()
	assert.Nil(t, patch.QuotesGenerated)
	require.NotNil(t, patch.WallpapersSaved)
	assert.Equal(t, int64(4), *patch.WallpapersSaved)

	var negative StatsPatchRequest
	err := bind(t, `{"favoriteQuotes":-1}`, &negative)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "must be greater than or equal to 0", FieldErrors(err)["favoriteQuotes"])

	var fractional StatsPatchRequest
	err = bind(t, `{"quotesGenerated":1.5}`, &fractional)
	require.ErrorIs(t, err, ErrBinding)
	assert.Equal(t, "must be an integer", FieldErrors(err)["quotesGenerated"])
}

func TestBindAndValidate_Increment(t *testing.T) {
	var req IncrementRequest
	require.NoError(t, bind(t, `{"counter":"wallpapersSaved"}`, &req))
	assert.Equal(t, int64(1), req.Amount())

	require.NoError(t, bind(t, `{"counter":"favoriteQuotes","delta":-2}`, &req))
	assert.Equal(t, int64(-2), req.Amount())

	err := bind(t, `{"counter":"visits"}`, &IncrementRequest{})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, FieldErrors(err)["counter"], "must be one of")

	require.NoError(t, bind(t, `{"counter":"wallpapersSaved","delta":1000000}`, &IncrementRequest{}))

	err = bind(t, `{"counter":"wallpapersSaved","delta":9223372036854775807}`, &IncrementRequest{})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "must be less than or equal to 1000000", FieldErrors(err)["delta"])

	err = bind(t, `{"counter":"favoriteQuotes","delta":-1000001}`, &IncrementRequest{})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "must be greater than or equal to -1000000", FieldErrors(err)["delta"])
}

func TestBindAndValidate_ShareRequest(t *testing.T) {
	var req ShareRequest
	err := bind(t, `{"text":"a","author":"b","category":"c","target":"twitter","pageUrl":"not a url"}`, &req)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "must be a valid URL", FieldErrors(err)["pageUrl"])
}

func TestRespondBindError(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "malformed", body: `{oops`, wantMsg: "request body is not valid JSON"},
		{name: "empty", body: ``, wantMsg: "request validation failed"},
		{name: "missing fields", body: `{}`, wantMsg: "request validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var req QuoteRequest
			err := BindAndValidate(c, &req)
			require.Error(t, err)

			RespondBindError(c, err)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, ErrorCodeValidation, body.Error.Code)
			assert.Equal(t, tt.wantMsg, body.Error.Message)
		})
	}
}

func TestRespondBindError_TooLarge(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"`+strings.Repeat("x", 64)+`"}`))
	c.Request.Body = http.MaxBytesReader(w, c.Request.Body, 16)

	err := BindAndValidate(c, &QuoteRequest{})
	require.Error(t, err)

	RespondBindError(c, err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestResponses(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	fav := NewFavoriteResponse(domain.Quote{ID: 3, Text: "t", Author: "a", Category: "life", IsFavorite: true, CreatedAt: created})
	assert.Equal(t, FavoriteResponse{ID: 3, Text: "t", Author: "a", Category: "life", IsFavorite: true, CreatedAt: created}, fav)

	assert.NotNil(t, NewFavoriteResponses(nil))

	assert.Equal(t, []SourceQuote{{Text: "Be water.", Author: "Bruce Lee"}, {Text: "Keep going.", Author: domain.DefaultQuoteAuthor}},
		NewSourceQuotes([]domain.RawQuote{{Q: "Be water.", A: "Bruce Lee"}, {Text: "Keep going."}}))

	assert.Equal(t, ShareResponse{Action: "copy-text", Payload: "x"},
		NewShareResponse(share.Payload{Action: share.ActionCopyText, Payload: "x"}))
}

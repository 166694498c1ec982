package logging

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHandler struct{ err error }

func (failingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h failingHandler) Handle(context.Context, slog.Record) error { return h.err } //nolint:gocritic // interface

func (h failingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h failingHandler) WithGroup(string) slog.Handler { return h }

func TestMultiHandler_Enabled(t *testing.T) {
	debug := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	errOnly := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError})

	assert.True(t, NewMultiHandler(debug, errOnly).Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, NewMultiHandler(errOnly, errOnly).Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, NewMultiHandler().Enabled(context.Background(), slog.LevelError))
}

func TestMultiHandler_Handle_RespectsChildLevels(t *testing.T) {
	var verbose, quiet bytes.Buffer

	logger := slog.New(NewMultiHandler(
		slog.NewJSONHandler(&verbose, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&quiet, &slog.HandlerOptions{Level: slog.LevelInfo}),
	))

	logger.Debug("resolving quote")
	logger.Info("quote resolved")

	assert.Contains(t, verbose.String(), "resolving quote")
	assert.Contains(t, verbose.String(), "quote resolved")
	assert.NotContains(t, quiet.String(), "resolving quote")
	assert.Contains(t, quiet.String(), "quote resolved")
}

func TestMultiHandler_Handle_JoinsErrors(t *testing.T) {
	errA := errors.New("disk full")
	errB := errors.New("pipe closed")

	h := NewMultiHandler(failingHandler{errA}, slog.NewJSONHandler(io.Discard, nil), failingHandler{errB})

	err := h.Handle(context.Background(), slog.NewRecord(time.Time{}, slog.LevelInfo, "x", 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestMultiHandler_WithAttrsAndGroup(t *testing.T) {
	var a, b bytes.Buffer

	logger := slog.New(NewMultiHandler(slog.NewJSONHandler(&a, nil), slog.NewJSONHandler(&b, nil)))
	logger.With(slog.String("source", "typefit")).WithGroup("fetch").Info("done", slog.Int("count", 3))

	for _, out := range []string{a.String(), b.String()} {
		assert.Contains(t, out, `"source":"typefit"`)
		assert.Contains(t, out, `"fetch":{"count":3}`)
	}
}

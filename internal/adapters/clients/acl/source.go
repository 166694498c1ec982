package acl

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quoteflow/internal/adapters/clients"
	"github.com/jsamuelsen/quoteflow/internal/domain"
	"github.com/jsamuelsen/quoteflow/internal/platform/logging"
)

// DefaultQuotesPath is the list endpoint shared by both upstreams.
const DefaultQuotesPath = "/api/quotes"

// getter is the part of clients.Client an adapter needs.
type getter interface {
	GetJSON(ctx context.Context, path string, v any) error
	CircuitState() clients.State
}

// listSource is the shared shape of the upstream adapters: GET a JSON
// array of E from path and translate each element.
type listSource[E any] struct {
	client    getter
	name      string
	path      string
	translate Translator[E, domain.RawQuote]
}

func (s *listSource[E]) SourceName() string {
	return s.name
}

func (s *listSource[E]) ListQuotes(ctx context.Context) ([]domain.RawQuote, error) {
	logger := logging.FromContext(ctx)
	logger.Log(ctx, logging.LevelTrace, "fetching quote list",
		slog.String("source", s.name),
		slog.String("path", s.path),
	)

	var payload []E
	if err := s.client.GetJSON(ctx, s.path, &payload); err != nil {
		return nil, MapClientError(s.name, err)
	}

	quotes := TranslateSlice(payload, s.translate)

	logger.DebugContext(ctx, "fetched quote list",
		slog.String("source", s.name),
		slog.Int("count", len(quotes)),
	)

	return quotes, nil
}

// Name implements ports.HealthChecker.
func (s *listSource[E]) Name() string {
	return s.name
}

// Check implements ports.HealthChecker without calling the upstream, which
// rate-limits anonymous callers; only an open breaker is reported.
func (s *listSource[E]) Check(context.Context) error {
	return checkCircuit(s.name, s.client.CircuitState())
}

// NonCritical implements ports.NonCritical.
func (s *listSource[E]) NonCritical() bool {
	return true
}

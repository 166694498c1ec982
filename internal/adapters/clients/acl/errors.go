package acl

import (
	"errors"
	"fmt"

	"github.com/jsamuelsen/quoteflow/internal/adapters/clients"
	"github.com/jsamuelsen/quoteflow/internal/domain"
)

// MapClientError translates a clients error into a domain.UpstreamError
// that keeps the original as its cause.
func MapClientError(source string, err error) error {
	if err == nil {
		return nil
	}

	var (
		statusErr *clients.StatusError
		decodeErr *clients.DecodeError
	)

	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUpstreamError(source, "circuit breaker open", err)
	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewUpstreamError(source, "retries exhausted", err)
	case errors.As(err, &statusErr):
		return domain.NewUpstreamError(source, fmt.Sprintf("unexpected status %d", statusErr.StatusCode), err)
	case errors.As(err, &decodeErr):
		return domain.NewUpstreamError(source, "malformed response body", err)
	default:
		return domain.NewUpstreamError(source, "request failed", err)
	}
}

// checkCircuit reports an open breaker as a domain.UnavailableError.
func checkCircuit(source string, state clients.State) error {
	if state == clients.StateOpen {
		return domain.NewUnavailableError(source, "circuit breaker open")
	}

	return nil
}

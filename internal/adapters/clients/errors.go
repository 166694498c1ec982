// Package clients provides the instrumented HTTP client used to reach the
// upstream quote sources.
package clients

import (
	"errors"
	"fmt"
)

// Transport-level failures. The ACL translates them into domain errors.
var (
	ErrCircuitOpen        = errors.New("circuit breaker open")
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)

// StatusError is a non-2xx response that was not retried away.
type StatusError struct {
	Service    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s responded %d", e.Service, e.StatusCode)
}

// DecodeError is a 2xx response whose body was not the expected JSON.
type DecodeError struct {
	Service string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s response: %v", e.Service, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

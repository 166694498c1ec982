// Package middleware provides the gin middleware chain for the QuoteFlow API.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/quoteflow/internal/platform/logging"
)

// Propagated request headers.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

type idKey int

const (
	requestIDKey idKey = iota
	correlationIDKey
)

// idSpec describes one propagated identifier.
type idSpec struct {
	header string
	key    idKey
	tag    func(context.Context, string) context.Context
}

var (
	requestIDSpec     = idSpec{header: HeaderRequestID, key: requestIDKey, tag: logging.WithRequestID}
	correlationIDSpec = idSpec{header: HeaderCorrelationID, key: correlationIDKey, tag: logging.WithCorrelationID}
)

// RequestID reuses the caller's X-Request-ID or mints a UUID, echoes it on
// the response, and stores it on the request context and its logger.
func RequestID() gin.HandlerFunc {
	return idMiddleware(requestIDSpec)
}

// CorrelationID does the same for X-Correlation-ID, which spans a whole
// user action (e.g. a wallpaper download that also bumps the stats).
func CorrelationID() gin.HandlerFunc {
	return idMiddleware(correlationIDSpec)
}

func idMiddleware(spec idSpec) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(spec.header)
		if id == "" {
			id = uuid.NewString()
		}

		c.Header(spec.header, id)

		ctx := context.WithValue(c.Request.Context(), spec.key, id)
		c.Request = c.Request.WithContext(spec.tag(ctx, id))

		c.Next()
	}
}

// RequestIDFromContext returns the request ID, or "".
func RequestIDFromContext(ctx context.Context) string {
	return idFromContext(ctx, requestIDKey)
}

// CorrelationIDFromContext returns the correlation ID, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return idFromContext(ctx, correlationIDKey)
}

// ContextWithRequestID stores a request ID without touching the logger.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// ContextWithCorrelationID stores a correlation ID without touching the logger.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

func idFromContext(ctx context.Context, key idKey) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(key).(string)

	return id
}

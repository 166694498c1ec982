package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quoteflow/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quoteflow/internal/platform/config"
	"github.com/jsamuelsen/quoteflow/internal/platform/logging"
)

const (
	instrumentationName = "github.com/jsamuelsen/quoteflow/internal/adapters/clients"

	defaultTimeout = 10 * time.Second

	// Upstream quote lists are a few hundred KB at most.
	maxBodyBytes = 4 << 20
)

// Config configures a Client.
type Config struct {
	BaseURL     string
	ServiceName string

	// Timeout bounds a single attempt. Retries and backoff come on top.
	Timeout   time.Duration
	Retry     config.RetryConfig
	Circuit   config.CircuitBreakerConfig
	Transport config.TransportConfig

	// OnCircuitChange is told about every breaker transition, after it has
	// been logged.
	OnCircuitChange func(service string, from, to State)

	Logger *slog.Logger
}

// Client is a GET-only JSON client with retry, a circuit breaker, otel spans
// and metrics, and request/correlation ID propagation.
type Client struct {
	http    *http.Client
	baseURL string
	service string
	retry   config.RetryConfig
	cb      *CircuitBreaker

	tracer   trace.Tracer
	duration metric.Float64Histogram
	total    metric.Int64Counter
}

// New creates a Client.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	retry := cfg.Retry
	if retry.MaxAttempts < 1 {
		retry.MaxAttempts = 1
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("component", "clients"), slog.String("downstream", cfg.ServiceName))

	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   cfg.Circuit.MaxFailures,
		Timeout:       cfg.Circuit.Timeout,
		HalfOpenLimit: cfg.Circuit.HalfOpenLimit,
	})
	cb.OnStateChange(func(from, to State) {
		logger.Warn("circuit breaker state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)

		if cfg.OnCircuitChange != nil {
			cfg.OnCircuitChange(cfg.ServiceName, from, to)
		}
	})

	meter := otel.Meter(instrumentationName)

	duration, err := meter.Float64Histogram("http.client.request.duration",
		metric.WithDescription("Duration of upstream quote source requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	total, err := meter.Int64Counter("http.client.request.total",
		metric.WithDescription("Upstream quote source requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        cfg.Transport.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Transport.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.Transport.IdleConnTimeout,
	}

	return &Client{
		http:     &http.Client{Timeout: timeout, Transport: transport},
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		service:  cfg.ServiceName,
		retry:    retry,
		cb:       cb,
		tracer:   otel.Tracer(instrumentationName),
		duration: duration,
		total:    total,
	}, nil
}

// ServiceName returns the downstream name the client was built for.
func (c *Client) ServiceName() string {
	return c.service
}

// CircuitState returns the breaker state.
func (c *Client) CircuitState() State {
	return c.cb.State()
}

// GetJSON fetches path and decodes the body into v.
//
// 5xx responses and network errors are retried with exponential backoff.
// Other non-2xx responses come back as *StatusError, undecodable bodies as
// *DecodeError. Exhausted retries wrap ErrMaxRetriesExceeded and an open
// breaker returns ErrCircuitOpen without touching the network.
func (c *Client) GetJSON(ctx context.Context, path string, v any) error {
	start := time.Now()
	logger := logging.FromContext(ctx).With(
		slog.String("downstream", c.service),
		slog.String("path", path),
	)

	if !c.cb.Allow() {
		c.record(ctx, 0, start, "circuit_open")
		logger.WarnContext(ctx, "request blocked by circuit breaker")

		return ErrCircuitOpen
	}

	ctx, span := c.tracer.Start(ctx, "GET "+c.service,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", http.MethodGet),
			attribute.String("http.url", c.url(path)),
			attribute.String("peer.service", c.service),
		),
	)
	defer span.End()

	resp, err := c.getWithRetry(ctx, path, logger)
	if err != nil {
		c.cb.RecordFailure()
		c.record(ctx, 0, start, "error")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.WarnContext(ctx, "upstream request failed", slog.Any("error", err))

		return err
	}
	defer closeBody(resp, logger)

	// A well-formed 4xx says nothing about the upstream's health.
	c.cb.RecordSuccess()
	c.record(ctx, resp.StatusCode, start, fmt.Sprintf("%dxx", resp.StatusCode/100))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := &StatusError{Service: c.service, StatusCode: resp.StatusCode}
		span.SetStatus(codes.Error, err.Error())

		return err
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(v); err != nil {
		span.SetStatus(codes.Error, "decode")
		return &DecodeError{Service: c.service, Err: err}
	}

	logger.DebugContext(ctx, "upstream request completed",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	return nil
}

func (c *Client) getWithRetry(ctx context.Context, path string, logger *slog.Logger) (*http.Response, error) {
	var lastErr error

	for attempt := range c.retry.MaxAttempts {
		if attempt > 0 {
			backoff := c.backoff(attempt)
			logger.DebugContext(ctx, "retrying request",
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)

			timer := time.NewTimer(backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}

		c.injectHeaders(ctx, req)

		resp, err := c.http.Do(req)
		if err != nil {
			if !isRetryable(err) {
				return nil, err
			}

			lastErr = err

			continue
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			closeBody(resp, logger)
			lastErr = &StatusError{Service: c.service, StatusCode: resp.StatusCode}

			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, lastErr)
}

func (c *Client) injectHeaders(ctx context.Context, req *http.Request) {
	req.Header.Set("Accept", "application/json")

	if id := middleware.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderRequestID, id)
	}

	if id := middleware.CorrelationIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderCorrelationID, id)
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

// backoff is InitialInterval * Multiplier^attempt capped at MaxInterval,
// then spread by ±JitterFactor.
func (c *Client) backoff(attempt int) time.Duration {
	d := float64(c.retry.InitialInterval) * math.Pow(c.retry.Multiplier, float64(attempt))
	d = min(d, float64(c.retry.MaxInterval))

	jitter := (rand.Float64()*2 - 1) * c.retry.JitterFactor //nolint:gosec // backoff spread, not security

	return time.Duration(d + d*jitter)
}

func (c *Client) record(ctx context.Context, status int, start time.Time, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("peer.service", c.service),
		attribute.String("result", result),
	}
	if status > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", status))
	}

	opt := metric.WithAttributes(attrs...)
	c.duration.Record(ctx, time.Since(start).Seconds(), opt)
	c.total.Add(ctx, 1, opt)
}

func closeBody(resp *http.Response, logger *slog.Logger) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	if err := resp.Body.Close(); err != nil {
		logger.Debug("closing response body", slog.Any("error", err))
	}
}

// isRetryable reports network-level failures worth another attempt.
// Caller cancellation and deadlines are final.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}

//go:build integration

package integration

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quoteflow/internal/adapters/cache"
	"github.com/jsamuelsen/quoteflow/internal/adapters/clients"
	"github.com/jsamuelsen/quoteflow/internal/adapters/clients/acl"
	qfhttp "github.com/jsamuelsen/quoteflow/internal/adapters/http"
	"github.com/jsamuelsen/quoteflow/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quoteflow/internal/adapters/memory"
	"github.com/jsamuelsen/quoteflow/internal/app"
	"github.com/jsamuelsen/quoteflow/internal/platform/config"
	"github.com/jsamuelsen/quoteflow/internal/platform/logging"
	"github.com/jsamuelsen/quoteflow/internal/platform/metrics"
	"github.com/jsamuelsen/quoteflow/internal/ports"
	"github.com/jsamuelsen/quoteflow/internal/quotes"
	"github.com/jsamuelsen/quoteflow/internal/wallpaper"
)

const (
	zenBody     = `[{"q":"Zen integration quote.","a":"Zen Author","h":"<blockquote/>"}]`
	typeFitBody = `[{"text":"Fit integration quote.","author":"Fit Author, type.fit"},{"text":"Nobody said it.","author":null}]`
)

// upstream is a stub quote API that can be switched into failure mode.
type upstream struct {
	*httptest.Server
	calls atomic.Int32
	fail  atomic.Bool
}

func newUpstream(body string) *upstream {
	u := &upstream{}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		u.calls.Add(1)

		if u.fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))

	return u
}

// stackOptions tweaks the in-process service.
type stackOptions struct {
	cache       ports.Cache
	cacheTTL    time.Duration
	maxFailures int
}

// stack is the whole service wired the way cmd/service wires it, with
// stub upstreams and in-memory stores.
type stack struct {
	server  *httptest.Server
	zen     *upstream
	typeFit *upstream
	metrics *prometheus.Registry
}

func newStack(opts stackOptions) (*stack, error) {
	s := &stack{
		zen:     newUpstream(zenBody),
		typeFit: newUpstream(typeFitBody),
		metrics: metrics.NewRegistry(),
	}

	if opts.cache == nil {
		opts.cache = cache.NewMemory()
	}

	if opts.maxFailures == 0 {
		opts.maxFailures = 3
	}

	logger := logging.NewWithWriter(&logging.Config{Level: "error", Format: "json", Service: "quoteflow-it"}, io.Discard)
	recorder := metrics.New(s.metrics)
	health := ports.NewHealthRegistry()

	newClient := func(name, baseURL string) (*clients.Client, error) {
		return clients.New(&clients.Config{
			BaseURL:     baseURL,
			ServiceName: name,
			Timeout:     time.Second,
			Retry: config.RetryConfig{
				MaxAttempts:     1,
				InitialInterval: 10 * time.Millisecond,
				MaxInterval:     50 * time.Millisecond,
				Multiplier:      2.0,
			},
			Circuit: config.CircuitBreakerConfig{
				MaxFailures:   opts.maxFailures,
				Timeout:       time.Minute,
				HalfOpenLimit: 1,
			},
			OnCircuitChange: func(service string, _, to clients.State) {
				recorder.CircuitStateChanged(service, int(to))
			},
			Logger: logger,
		})
	}

	zenClient, err := newClient(acl.ZenQuotesName, s.zen.URL)
	if err != nil {
		s.Close()
		return nil, err
	}

	typeFitClient, err := newClient(acl.TypeFitName, s.typeFit.URL)
	if err != nil {
		s.Close()
		return nil, err
	}

	primary := acl.NewZenQuotesClient(zenClient, "", "")
	secondary := acl.NewTypeFitClient(typeFitClient, "", "")

	for _, checker := range []ports.HealthChecker{primary, secondary} {
		if err := health.Register(checker); err != nil {
			s.Close()
			return nil, err
		}
	}

	fonts, err := wallpaper.DefaultFontSet()
	if err != nil {
		s.Close()
		return nil, err
	}

	stats := app.NewStatsService(memory.NewStatsLedger(), recorder)
	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Primary:   primary,
		Secondary: secondary,
		Cache:     opts.cache,
		CacheTTL:  opts.cacheTTL,
		Resolver:  quotes.NewResolver(quotes.WithSourceTimeout(time.Second)),
		Stats:     stats,
		Metrics:   recorder,
	})

	server := qfhttp.New(&config.ServerConfig{
		Host:           "127.0.0.1",
		Port:           config.DefaultServerPort,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    30 * time.Second,
		MaxRequestSize: config.DefaultMaxRequestSize,
	}, logger)

	qfhttp.SetupRouter(server.Engine(), qfhttp.RouterConfig{
		Logger:    logger,
		AppConfig: &config.AppConfig{Name: "quoteflow", Version: "it", Environment: "test"},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"*"}},
		Timeout:   10 * time.Second,
		Health:    handlers.NewHealthHandler(health, handlers.NewBuildInfo("it", "none", "now"), s.metrics),
		Quotes:    handlers.NewQuoteHandler(quoteService),
		Favorites: handlers.NewFavoritesHandler(app.NewFavoritesService(memory.NewFavoritesStore(), stats, recorder)),
		Stats:     handlers.NewStatsHandler(stats),
		Wallpapers: handlers.NewWallpaperHandler(app.NewWallpaperService(
			wallpaper.NewRenderer(fonts), stats, app.NewExecutor(logger), recorder)),
		Share: handlers.NewShareHandler(app.NewShareService("")),
	})

	s.server = httptest.NewServer(server.Engine())

	return s, nil
}

// URL is the base URL of the service.
func (s *stack) URL() string {
	return s.server.URL
}

func (s *stack) Close() {
	if s.server != nil {
		s.server.Close()
	}

	s.zen.Close()
	s.typeFit.Close()
}

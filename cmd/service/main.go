// Package main is the entry point for the QuoteFlow API server.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsamuelsen/quoteflow/internal/adapters/cache"
	"github.com/jsamuelsen/quoteflow/internal/adapters/clients"
	"github.com/jsamuelsen/quoteflow/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quoteflow/internal/adapters/http"
	"github.com/jsamuelsen/quoteflow/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quoteflow/internal/adapters/memory"
	"github.com/jsamuelsen/quoteflow/internal/app"
	"github.com/jsamuelsen/quoteflow/internal/platform/config"
	"github.com/jsamuelsen/quoteflow/internal/platform/logging"
	"github.com/jsamuelsen/quoteflow/internal/platform/metrics"
	"github.com/jsamuelsen/quoteflow/internal/platform/telemetry"
	"github.com/jsamuelsen/quoteflow/internal/ports"
	"github.com/jsamuelsen/quoteflow/internal/quotes"
	"github.com/jsamuelsen/quoteflow/internal/wallpaper"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Metrics and health registry
	registry := metrics.NewRegistry()
	recorder := metrics.New(registry)
	healthRegistry := ports.NewHealthRegistry()

	// 6. Quote list cache
	quoteCache, closeCache, err := newCache(cfg.Cache, healthRegistry)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := closeCache.Close(); closeErr != nil {
			logger.Error("cache close error", slog.Any("error", closeErr))
		}
	}()

	// 7. Upstream quote sources behind the anti-corruption layer
	zen, err := newSourceClient(cfg, cfg.Services.ZenQuotes, recorder, logger)
	if err != nil {
		return err
	}

	typeFit, err := newSourceClient(cfg, cfg.Services.TypeFit, recorder, logger)
	if err != nil {
		return err
	}

	primary := acl.NewZenQuotesClient(zen, cfg.Services.ZenQuotes.Name, cfg.Services.ZenQuotes.Path)
	secondary := acl.NewTypeFitClient(typeFit, cfg.Services.TypeFit.Name, cfg.Services.TypeFit.Path)

	for _, checker := range []ports.HealthChecker{primary, secondary} {
		if err := healthRegistry.Register(checker); err != nil {
			return fmt.Errorf("registering %s health check: %w", checker.Name(), err)
		}
	}

	// 8. Wallpaper renderer
	fonts, err := wallpaper.LoadFontSet(wallpaper.FontConfig{
		Quote:  cfg.Wallpaper.Fonts.Quote,
		Author: cfg.Wallpaper.Fonts.Author,
		Badge:  cfg.Wallpaper.Fonts.Badge,
		Brand:  cfg.Wallpaper.Fonts.Brand,
	}, logger)
	if err != nil {
		return fmt.Errorf("loading fonts: %w", err)
	}

	renderer := wallpaper.NewRenderer(fonts, wallpaper.WithBrand(cfg.Wallpaper.Brand))

	// 9. Application services
	statsService := app.NewStatsService(memory.NewStatsLedger(), recorder)
	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Primary:   primary,
		Secondary: secondary,
		Cache:     quoteCache,
		CacheTTL:  cfg.Quotes.CacheTTL,
		Resolver:  quotes.NewResolver(quotes.WithSourceTimeout(cfg.Quotes.SourceTimeout)),
		Stats:     statsService,
		Metrics:   recorder,
	})
	favoritesService := app.NewFavoritesService(memory.NewFavoritesStore(), statsService, recorder)
	wallpaperService := app.NewWallpaperService(renderer, statsService, app.NewExecutor(logger), recorder)
	shareService := app.NewShareService(cfg.Share.PageURL)

	if cfg.Quotes.WarmOnStart {
		warmCtx, cancel := context.WithTimeout(ctx, cfg.Quotes.SourceTimeout)
		if err := quoteService.Warm(warmCtx); err != nil {
			logger.Warn("quote cache warm-up incomplete", slog.Any("error", err))
		}
		cancel()
	}

	// 10. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)

	// 11. Create HTTP server
	server := http.New(&cfg.Server, logger)

	// 12. Setup router with all middleware and routes
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:     logger,
		AppConfig:  &cfg.App,
		CORS:       cfg.CORS,
		Timeout:    cfg.Server.RequestTimeout,
		Health:     handlers.NewHealthHandler(healthRegistry, buildInfo, registry),
		Quotes:     handlers.NewQuoteHandler(quoteService),
		Favorites:  handlers.NewFavoritesHandler(favoritesService),
		Stats:      handlers.NewStatsHandler(statsService),
		Wallpapers: handlers.NewWallpaperHandler(wallpaperService),
		Share:      handlers.NewShareHandler(shareService),
	})

	// 13. Start server (non-blocking)
	serverErr := server.Start()

	// 14. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newCache builds the configured quote list cache. A Redis cache is
// registered as a critical readiness dependency.
func newCache(cfg config.CacheConfig, registry ports.HealthRegistry) (ports.Cache, io.Closer, error) {
	if cfg.Driver != config.CacheDriverRedis {
		return cache.NewMemory(), nopCloser{}, nil
	}

	r := cache.NewRedis(cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Prefix:   cfg.Redis.Prefix,
	})

	if err := registry.Register(r); err != nil {
		_ = r.Close()
		return nil, nil, fmt.Errorf("registering redis health check: %w", err)
	}

	return r, r, nil
}

// newSourceClient creates the resilient HTTP client for one upstream source.
func newSourceClient(
	cfg *config.Config,
	endpoint config.ServiceEndpointConfig,
	recorder *metrics.Recorder,
	logger *slog.Logger,
) (*clients.Client, error) {
	client, err := clients.New(&clients.Config{
		BaseURL:     endpoint.BaseURL,
		ServiceName: endpoint.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		OnCircuitChange: func(service string, _, to clients.State) {
			recorder.CircuitStateChanged(service, int(to))
		},
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %s client: %w", endpoint.Name, err)
	}

	return client, nil
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}

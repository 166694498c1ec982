package http

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteflow/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quoteflow/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quoteflow/internal/platform/config"
	"github.com/jsamuelsen/quoteflow/internal/platform/telemetry"
)

// DefaultRequestTimeout bounds /api requests when none is configured.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig carries what SetupRouter mounts. Nil handlers are skipped.
type RouterConfig struct {
	Logger    *slog.Logger
	AppConfig *config.AppConfig
	CORS      config.CORSConfig
	Timeout   time.Duration

	Health     *handlers.HealthHandler
	Quotes     *handlers.QuoteHandler
	Favorites  *handlers.FavoritesHandler
	Stats      *handlers.StatsHandler
	Wallpapers *handlers.WallpaperHandler
	Share      *handlers.ShareHandler
}

// SetupRouter installs the middleware chain and routes on engine.
//
// Middleware order: recovery, context logger, request and correlation ids,
// tracing, request metrics, access log, CORS. /api routes additionally get
// a request deadline; /-/ probes do not.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	serviceName := "quoteflow"
	if cfg.AppConfig != nil && cfg.AppConfig.Name != "" {
		serviceName = cfg.AppConfig.Name
	}

	engine.HandleMethodNotAllowed = true
	engine.NoRoute(noRoute)
	engine.NoMethod(noMethod)

	engine.Use(
		middleware.Recovery(),
		middleware.ContextLogger(logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.Tracing(serviceName),
		telemetry.Middleware(),
		middleware.Logging(),
		cors.New(corsConfig(cfg.CORS)),
	)

	if cfg.Health != nil {
		cfg.Health.RegisterRoutes(engine)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	api := engine.Group("/api", middleware.Timeout(timeout))

	if cfg.Quotes != nil {
		cfg.Quotes.RegisterRoutes(api)
	}

	if cfg.Favorites != nil {
		cfg.Favorites.RegisterRoutes(api)
	}

	if cfg.Stats != nil {
		cfg.Stats.RegisterRoutes(api)
	}

	if cfg.Wallpapers != nil {
		cfg.Wallpapers.RegisterRoutes(api)
	}

	if cfg.Share != nil {
		cfg.Share.RegisterRoutes(api)
	}
}

// corsConfig lets browser clients call the API directly. A "*" entry, or
// no entries at all, allows every origin.
func corsConfig(c config.CORSConfig) cors.Config {
	cc := cors.DefaultConfig()
	cc.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	cc.AllowHeaders = []string{
		"Origin", "Content-Length", "Content-Type",
		middleware.HeaderRequestID, middleware.HeaderCorrelationID,
	}
	cc.ExposeHeaders = []string{
		"Content-Disposition",
		middleware.HeaderRequestID, middleware.HeaderCorrelationID, telemetry.TraceIDHeader,
	}

	if len(c.AllowedOrigins) == 0 || slices.Contains(c.AllowedOrigins, "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = c.AllowedOrigins
	}

	if c.MaxAge > 0 {
		cc.MaxAge = c.MaxAge
	}

	return cc
}

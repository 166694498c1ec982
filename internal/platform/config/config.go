// Package config loads QuoteFlow configuration using koanf.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the port the API listens on.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize caps JSON request bodies at 1MB. Quote and
	// share payloads are a few hundred bytes.
	DefaultMaxRequestSize = 1 << 20

	// DefaultClientRetryMaxAttempts is the attempts per upstream quote list
	// fetch, first try included.
	DefaultClientRetryMaxAttempts = 2

	// DefaultClientRetryMultiplier grows the backoff between attempts.
	DefaultClientRetryMultiplier = 2.0

	// DefaultClientRetryJitterFactor spreads each backoff by up to 25%.
	DefaultClientRetryJitterFactor = 0.25

	// DefaultClientCircuitMaxFailures is the consecutive failures that open
	// a source's breaker.
	DefaultClientCircuitMaxFailures = 5

	// DefaultClientCircuitHalfOpenLimit is the trial requests a half-open
	// breaker lets through, and the successes it needs to close.
	DefaultClientCircuitHalfOpenLimit = 2

	// DefaultTransportMaxIdleConns bounds idle upstream connections overall.
	DefaultTransportMaxIdleConns = 50

	// DefaultTransportMaxIdleConnsPerHost bounds idle connections per source.
	DefaultTransportMaxIdleConnsPerHost = 10

	// DefaultLogFileMaxSizeMB rotates the log file at this size.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is how many rotated log files are kept.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays deletes rotated log files older than this.
	DefaultLogFileMaxAgeDays = 28

	// EnvPrefix prefixes every environment override. Nested keys are
	// separated by a double underscore: APP_SERVER__READ_TIMEOUT.
	EnvPrefix = "APP_"
)

// Cache drivers.
const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Client    ClientConfig    `koanf:"client"    validate:"required"`
	Services  ServicesConfig  `koanf:"services"  validate:"required"`
	Quotes    QuotesConfig    `koanf:"quotes"    validate:"required"`
	Cache     CacheConfig     `koanf:"cache"     validate:"required"`
	CORS      CORSConfig      `koanf:"cors"`
	Wallpaper WallpaperConfig `koanf:"wallpaper" validate:"required"`
	Share     ShareConfig     `koanf:"share"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	RequestTimeout  time.Duration `koanf:"request_timeout"  validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// ClientConfig contains HTTP client settings for the quote sources.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	Retry          RetryConfig          `koanf:"retry"           validate:"required"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
}

// RetryConfig contains retry settings for HTTP clients.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"required,min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"required,min=10ms"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"required,min=100ms"`
	Multiplier      float64       `koanf:"multiplier"       validate:"required,min=1.1,max=10"`
	JitterFactor    float64       `koanf:"jitter_factor"    validate:"min=0,max=1"`
}

// CircuitBreakerConfig contains circuit breaker settings for HTTP clients.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

// ServicesConfig lists the remote quote sources in priority order.
type ServicesConfig struct {
	ZenQuotes ServiceEndpointConfig `koanf:"zenquotes" validate:"required"`
	TypeFit   ServiceEndpointConfig `koanf:"typefit"   validate:"required"`
}

// ServiceEndpointConfig contains configuration for a remote quote source.
type ServiceEndpointConfig struct {
	BaseURL string `koanf:"base_url" validate:"required,url"`
	Name    string `koanf:"name"     validate:"required"`
	Path    string `koanf:"path"     validate:"required,startswith=/"`
}

// QuotesConfig controls quote resolution.
type QuotesConfig struct {
	SourceTimeout time.Duration `koanf:"source_timeout" validate:"required,min=100ms"`
	CacheTTL      time.Duration `koanf:"cache_ttl"`
	WarmOnStart   bool          `koanf:"warm_on_start"`
}

// CacheConfig selects where upstream quote lists are cached.
type CacheConfig struct {
	Driver string      `koanf:"driver" validate:"required,oneof=memory redis"`
	Redis  RedisConfig `koanf:"redis"`
}

// RedisConfig contains Redis connection settings.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"       validate:"min=0,max=15"`
	Prefix   string `koanf:"prefix"`
}

// CORSConfig contains cross-origin settings for browser clients.
type CORSConfig struct {
	AllowedOrigins []string      `koanf:"allowed_origins" validate:"dive,eq=*|url"`
	MaxAge         time.Duration `koanf:"max_age"`
}

// WallpaperConfig controls the renderer.
type WallpaperConfig struct {
	Brand string     `koanf:"brand" validate:"required"`
	Fonts FontConfig `koanf:"fonts"`
}

// FontConfig holds optional TrueType overrides per text role.
type FontConfig struct {
	Quote  string `koanf:"quote"`
	Author string `koanf:"author"`
	Badge  string `koanf:"badge"`
	Brand  string `koanf:"brand"`
}

// ShareConfig controls share link generation.
type ShareConfig struct {
	PageURL string `koanf:"page_url" validate:"omitempty,url"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "quoteflow",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.request_timeout":  "30s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/quoteflow.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "quoteflow",
		"telemetry.sampling_rate": 1.0,

		"client.timeout":                           "4s",
		"client.retry.max_attempts":                DefaultClientRetryMaxAttempts,
		"client.retry.initial_interval":            "100ms",
		"client.retry.max_interval":                "1s",
		"client.retry.multiplier":                  DefaultClientRetryMultiplier,
		"client.retry.jitter_factor":               DefaultClientRetryJitterFactor,
		"client.circuit_breaker.max_failures":      DefaultClientCircuitMaxFailures,
		"client.circuit_breaker.timeout":           "30s",
		"client.circuit_breaker.half_open_limit":   DefaultClientCircuitHalfOpenLimit,
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       "90s",

		"services.zenquotes.base_url": "https://zenquotes.io",
		"services.zenquotes.name":     "zenquotes",
		"services.zenquotes.path":     "/api/quotes",
		"services.typefit.base_url":   "https://type.fit",
		"services.typefit.name":       "typefit",
		"services.typefit.path":       "/api/quotes",

		"quotes.source_timeout": "5s",
		"quotes.cache_ttl":      "5m",
		"quotes.warm_on_start":  false,

		"cache.driver":         CacheDriverMemory,
		"cache.redis.addr":     "localhost:6379",
		"cache.redis.password": "",
		"cache.redis.db":       0,
		"cache.redis.prefix":   "quoteflow:",

		"cors.allowed_origins": []string{"*"},
		"cors.max_age":         "12h",

		"wallpaper.brand": "QuoteFlow",

		"share.page_url": "",
	}
}

// Options controls where Load looks for configuration.
type Options struct {
	// Profile selects configs/{profile}.yaml.
	Profile string

	// Dir holds base.yaml and the profile files. Defaults to "configs".
	Dir string

	// DotEnv lists .env files loaded into the process environment before
	// APP_ variables are read. Missing files are skipped.
	DotEnv []string
}

// Load loads configuration for profile from ./configs and ./.env.
func Load(profile string) (*Config, error) {
	return LoadWithOptions(Options{Profile: profile, DotEnv: []string{".env"}})
}

// LoadWithOptions loads configuration with the following precedence
// (highest to lowest):
//  1. Environment variables (APP_ prefix), including those from .env files
//  2. Profile config file ({dir}/{profile}.yaml)
//  3. Base config file ({dir}/base.yaml)
//  4. Default values
func LoadWithOptions(opts Options) (*Config, error) {
	if opts.Dir == "" {
		opts.Dir = "configs"
	}

	if err := loadDotEnv(opts.DotEnv); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if err := loadFileIfExists(k, opts.Dir+"/base.yaml"); err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	if opts.Profile != "" {
		if err := loadFileIfExists(k, fmt.Sprintf("%s/%s.yaml", opts.Dir, opts.Profile)); err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", opts.Profile, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKey maps APP_CACHE__REDIS__ADDR to cache.redis.addr.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// loadDotEnv loads .env files without overriding variables already set.
func loadDotEnv(paths []string) error {
	for _, p := range paths {
		err := godotenv.Load(p)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}

		return fmt.Errorf("loading %s: %w", p, err)
	}

	return nil
}

// loadFileIfExists loads a YAML config file if it exists.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}

// Package config provides application configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Default configuration values.
const (
	DefaultHost               = "0.0.0.0"
	DefaultPort               = 8000
	DefaultDBURL              = "sqlite:///./axd_app.db"
	DefaultLogLevel           = "INFO"
	DefaultPrincipalHeader    = "X-User-ID"
	DefaultPreviewLimit       = 100
	DefaultMaxOpenConns       = 10
	DefaultMaxIdleConns       = 5
	DefaultConnMaxLifetime    = 30 * time.Minute
	DefaultRequestTimeout     = 60 * time.Second
	DefaultCORSAllowedOrigins = "*"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// PoolConfig holds database connection pool settings.
type PoolConfig struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
}

// NewPoolConfig creates a PoolConfig with defaults.
func NewPoolConfig() PoolConfig {
	return PoolConfig{
		maxOpen:     DefaultMaxOpenConns,
		maxIdle:     DefaultMaxIdleConns,
		maxLifetime: DefaultConnMaxLifetime,
	}
}

// MaxOpen returns the maximum number of open connections.
func (p PoolConfig) MaxOpen() int { return p.maxOpen }

// MaxIdle returns the maximum number of idle connections.
func (p PoolConfig) MaxIdle() int { return p.maxIdle }

// MaxLifetime returns the maximum lifetime of a connection.
func (p PoolConfig) MaxLifetime() time.Duration { return p.maxLifetime }

// WithMaxOpen returns a new config with the given open connection limit.
func (p PoolConfig) WithMaxOpen(n int) PoolConfig {
	p.maxOpen = n
	return p
}

// WithMaxIdle returns a new config with the given idle connection limit.
func (p PoolConfig) WithMaxIdle(n int) PoolConfig {
	p.maxIdle = n
	return p
}

// WithMaxLifetime returns a new config with the given connection lifetime.
func (p PoolConfig) WithMaxLifetime(d time.Duration) PoolConfig {
	p.maxLifetime = d
	return p
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	host            string
	port            int
	dbURL           string
	logLevel        string
	logFormat       LogFormat
	apiKeys         []string
	corsOrigins     []string
	principalHeader string
	maskFreeText    bool
	previewLimit    int
	pool            PoolConfig
	requestTimeout  time.Duration
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:            DefaultHost,
		port:            DefaultPort,
		dbURL:           DefaultDBURL,
		logLevel:        DefaultLogLevel,
		logFormat:       LogFormatPretty,
		apiKeys:         []string{},
		corsOrigins:     []string{DefaultCORSAllowedOrigins},
		principalHeader: DefaultPrincipalHeader,
		previewLimit:    DefaultPreviewLimit,
		pool:            NewPoolConfig(),
		requestTimeout:  DefaultRequestTimeout,
	}
}

// Host returns the server host.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port.
func (c AppConfig) Port() int { return c.port }

// Addr returns the server address (host:port).
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// APIKeys returns a copy of the configured API keys.
func (c AppConfig) APIKeys() []string {
	keys := make([]string, len(c.apiKeys))
	copy(keys, c.apiKeys)
	return keys
}

// CORSAllowedOrigins returns a copy of the allowed CORS origins.
func (c AppConfig) CORSAllowedOrigins() []string {
	origins := make([]string, len(c.corsOrigins))
	copy(origins, c.corsOrigins)
	return origins
}

// PrincipalHeader returns the request header carrying the caller's user id.
func (c AppConfig) PrincipalHeader() string { return c.principalHeader }

// MaskFreeText reports whether description fields are redacted along with names.
func (c AppConfig) MaskFreeText() bool { return c.maskFreeText }

// PreviewLimit returns the default and maximum number of sample rows per preview.
func (c AppConfig) PreviewLimit() int { return c.previewLimit }

// Pool returns the connection pool settings.
func (c AppConfig) Pool() PoolConfig { return c.pool }

// RequestTimeout returns the per-request timeout.
func (c AppConfig) RequestTimeout() time.Duration { return c.requestTimeout }

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithAPIKeys sets the API keys that unlock mutating endpoints.
func WithAPIKeys(keys []string) AppConfigOption {
	return func(c *AppConfig) {
		c.apiKeys = make([]string, len(keys))
		copy(c.apiKeys, keys)
	}
}

// WithCORSAllowedOrigins sets the allowed CORS origins.
func WithCORSAllowedOrigins(origins []string) AppConfigOption {
	return func(c *AppConfig) {
		c.corsOrigins = make([]string, len(origins))
		copy(c.corsOrigins, origins)
	}
}

// WithPrincipalHeader sets the header used to identify the caller.
func WithPrincipalHeader(name string) AppConfigOption {
	return func(c *AppConfig) { c.principalHeader = name }
}

// WithMaskFreeText enables redaction of description fields on masked assets.
func WithMaskFreeText(enabled bool) AppConfigOption {
	return func(c *AppConfig) { c.maskFreeText = enabled }
}

// WithPreviewLimit sets the preview row limit.
func WithPreviewLimit(n int) AppConfigOption {
	return func(c *AppConfig) { c.previewLimit = n }
}

// WithPool sets the connection pool settings.
func WithPool(p PoolConfig) AppConfigOption {
	return func(c *AppConfig) { c.pool = p }
}

// WithRequestTimeout sets the per-request timeout.
func WithRequestTimeout(d time.Duration) AppConfigOption {
	return func(c *AppConfig) { c.requestTimeout = d }
}

// NewAppConfigWithOptions creates an AppConfig with the given options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	cfg := NewAppConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// MarshalZerologObject writes the loggable configuration fields, masking credentials.
func (c AppConfig) MarshalZerologObject(e *zerolog.Event) {
	e.Str("addr", c.Addr()).
		Str("db_url", c.maskedDBURL()).
		Str("log_level", c.logLevel).
		Str("log_format", string(c.logFormat)).
		Int("api_keys_count", len(c.apiKeys)).
		Strs("cors_allowed_origins", c.corsOrigins).
		Str("principal_header", c.principalHeader).
		Bool("mask_free_text", c.maskFreeText).
		Int("preview_limit", c.previewLimit)
}

func (c AppConfig) maskedDBURL() string {
	if strings.HasPrefix(c.dbURL, "sqlite:") {
		return c.dbURL
	}
	return "postgres://***@***"
}

// ParseList parses a comma-separated string into trimmed, non-empty items.
func ParseList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

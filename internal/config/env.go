package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8000)
	Port int `envconfig:"PORT" default:"8000"`

	// DBURL is the database connection URL.
	// Env: DB_URL (default: sqlite:///./axd_app.db)
	DBURL string `envconfig:"DB_URL" default:"sqlite:///./axd_app.db"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// APIKeys is a comma-separated list of keys accepted on mutating endpoints.
	// Env: API_KEYS
	APIKeys string `envconfig:"API_KEYS"`

	// CORSAllowedOrigins is a comma-separated list of allowed origins.
	// Env: CORS_ALLOWED_ORIGINS (default: *)
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// PrincipalHeader is the request header carrying the caller's user id.
	// Env: PRINCIPAL_HEADER (default: X-User-ID)
	PrincipalHeader string `envconfig:"PRINCIPAL_HEADER" default:"X-User-ID"`

	// MaskFreeText also blanks description and business definition on masked assets.
	// Env: MASK_FREE_TEXT (default: false)
	MaskFreeText bool `envconfig:"MASK_FREE_TEXT" default:"false"`

	// PreviewLimit caps the number of sample rows returned by a preview.
	// Env: PREVIEW_LIMIT (default: 100)
	PreviewLimit int `envconfig:"PREVIEW_LIMIT" default:"100"`

	// DB configures the connection pool.
	DB PoolEnv `envconfig:"DB"`

	// RequestTimeoutSeconds bounds each HTTP request.
	// Env: REQUEST_TIMEOUT_SECONDS (default: 60)
	RequestTimeoutSeconds float64 `envconfig:"REQUEST_TIMEOUT_SECONDS" default:"60"`
}

// PoolEnv holds environment configuration for the connection pool.
type PoolEnv struct {
	// Env: DB_MAX_OPEN_CONNS (default: 10)
	MaxOpenConns int `envconfig:"MAX_OPEN_CONNS" default:"10"`

	// Env: DB_MAX_IDLE_CONNS (default: 5)
	MaxIdleConns int `envconfig:"MAX_IDLE_CONNS" default:"5"`

	// Env: DB_CONN_MAX_LIFETIME_SECONDS (default: 1800)
	ConnMaxLifetimeSeconds float64 `envconfig:"CONN_MAX_LIFETIME_SECONDS" default:"1800"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "CATALOG" would require CATALOG_DB_URL instead of DB_URL.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = applyOption(cfg, WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = applyOption(cfg, WithPort(e.Port))
	}
	if e.DBURL != "" {
		cfg = applyOption(cfg, WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.APIKeys != "" {
		cfg = applyOption(cfg, WithAPIKeys(ParseList(e.APIKeys)))
	}
	if e.CORSAllowedOrigins != "" {
		cfg = applyOption(cfg, WithCORSAllowedOrigins(ParseList(e.CORSAllowedOrigins)))
	}
	if e.PrincipalHeader != "" {
		cfg = applyOption(cfg, WithPrincipalHeader(e.PrincipalHeader))
	}
	cfg = applyOption(cfg, WithMaskFreeText(e.MaskFreeText))
	if e.PreviewLimit > 0 {
		cfg = applyOption(cfg, WithPreviewLimit(e.PreviewLimit))
	}
	cfg = applyOption(cfg, WithPool(e.DB.ToPoolConfig()))
	if e.RequestTimeoutSeconds > 0 {
		cfg = applyOption(cfg, WithRequestTimeout(seconds(e.RequestTimeoutSeconds)))
	}

	return cfg
}

// ToPoolConfig converts PoolEnv to PoolConfig.
func (p PoolEnv) ToPoolConfig() PoolConfig {
	pool := NewPoolConfig()
	if p.MaxOpenConns > 0 {
		pool = pool.WithMaxOpen(p.MaxOpenConns)
	}
	if p.MaxIdleConns >= 0 {
		pool = pool.WithMaxIdle(p.MaxIdleConns)
	}
	if p.ConnMaxLifetimeSeconds > 0 {
		pool = pool.WithMaxLifetime(seconds(p.ConnMaxLifetimeSeconds))
	}
	return pool
}

func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}

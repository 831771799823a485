package catalog

import (
	"time"

	"github.com/axd-platform/catalog/application/service"
	"github.com/axd-platform/catalog/internal/config"
	"github.com/rs/zerolog"
)

// clientConfig holds configuration for Client construction.
// Use newClientConfig() to create with defaults from internal/config.
type clientConfig struct {
	dbURL        string
	logger       *zerolog.Logger
	pool         config.PoolConfig
	maskFreeText bool
	previewLimit int
	clock        service.Clock
}

func newClientConfig() *clientConfig {
	return &clientConfig{
		pool:         config.NewPoolConfig(),
		previewLimit: config.DefaultPreviewLimit,
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite stores the catalog in the SQLite file at path.
// Use ":memory:" for a throwaway database.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.dbURL = "sqlite:///" + path
	}
}

// WithPostgres stores the catalog in PostgreSQL.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.dbURL = dsn
	}
}

// WithDatabaseURL selects the database from a DB_URL style connection string
// (sqlite:///path, postgres:// or postgresql://).
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		c.dbURL = url
	}
}

// WithLogger sets the logger used outside of request contexts.
func WithLogger(l zerolog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = &l
	}
}

// WithPool sets connection pool limits. Ignored for SQLite.
func WithPool(p config.PoolConfig) Option {
	return func(c *clientConfig) {
		c.pool = p
	}
}

// WithMaskFreeText also blanks description and business definition on
// assets the caller may not see.
func WithMaskFreeText(enabled bool) Option {
	return func(c *clientConfig) {
		c.maskFreeText = enabled
	}
}

// WithPreviewLimit caps the rows returned by a preview. Values <= 0 are ignored.
func WithPreviewLimit(n int) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.previewLimit = n
		}
	}
}

// WithClock replaces the wall clock used for grant expiry and timestamps.
// Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *clientConfig) {
		c.clock = now
	}
}

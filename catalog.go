// Package catalog provides a metadata catalog of data assets.
//
// The catalog stores tables together with their columns, lineage, discussion
// threads and sample rows, and controls who may see the names of sensitive
// assets through expiring permission grants.
//
// Basic usage:
//
//	client, err := catalog.New(catalog.WithSQLite("axd_app.db"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	views, err := client.Assets.List(ctx, access.NewPrincipal("u1", "", ""), "")
//	for _, v := range views {
//	    fmt.Println(v.Asset().Name(), v.IsMasked(), v.HasPermission())
//	}
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/axd-platform/catalog/application/service"
	"github.com/axd-platform/catalog/domain/access"
	"github.com/axd-platform/catalog/infrastructure/persistence"
	"github.com/axd-platform/catalog/internal/config"
	"github.com/axd-platform/catalog/internal/database"
	"github.com/axd-platform/catalog/internal/log"
	"github.com/rs/zerolog"
)

// Client is the main entry point for the catalog.
//
// Access use cases via struct fields:
//
//	client.Assets.Get(ctx, principal, id)
//	client.Access.Approve(ctx, requestID, reviewer, "ok")
//	client.Bootstrap.Seed(ctx)
type Client struct {
	Assets        *service.Asset
	Comments      *service.Comment
	Access        *service.Access
	Notifications *service.Notification
	Dashboard     *service.Dashboard
	Requests      *service.RequestCenter
	Bootstrap     *service.Bootstrap

	db     database.Database
	logger zerolog.Logger
	closed atomic.Bool
	mu     sync.Mutex
}

// New opens the database, migrates the schema and wires the use cases.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.dbURL == "" {
		return nil, ErrNoDatabase
	}

	logger := log.NewLogger(config.NewAppConfig())
	if cfg.logger != nil {
		logger = *cfg.logger
	}
	ctx := logger.WithContext(context.Background())

	db, err := database.NewDatabase(ctx, cfg.dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pool := cfg.pool
	if err := db.ConfigurePool(pool.MaxOpen(), pool.MaxIdle(), pool.MaxLifetime()); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("configure pool: %w", err), errClose)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}

	stores := newStores(db)
	policy := access.NewPolicy(cfg.maskFreeText)

	client := &Client{
		Assets:        service.NewAsset(stores, policy, cfg.previewLimit, cfg.clock),
		Comments:      service.NewComment(stores.Assets, stores.Comments, cfg.clock),
		Access:        service.NewAccess(db, stores, cfg.clock),
		Notifications: service.NewNotification(stores.Notifications),
		Dashboard:     service.NewDashboard(stores, cfg.clock),
		Requests:      service.NewRequestCenter(stores),
		Bootstrap:     service.NewBootstrap(db, stores, cfg.clock),
		db:            db,
		logger:        logger,
	}

	logger.Debug().Bool("sqlite", db.IsSQLite()).Msg("catalog client ready")
	return client, nil
}

func newStores(db database.Database) service.Stores {
	return service.Stores{
		Services:        persistence.NewServiceStore(db),
		Assets:          persistence.NewAssetStore(db),
		Columns:         persistence.NewColumnStore(db),
		Lineage:         persistence.NewLineageStore(db),
		Comments:        persistence.NewCommentStore(db),
		Samples:         persistence.NewSampleStore(db),
		Grants:          persistence.NewGrantStore(db),
		Requests:        persistence.NewRequestStore(db),
		Categories:      persistence.NewCategoryStore(db),
		Types:           persistence.NewRequestTypeStore(db),
		ServiceRequests: persistence.NewServiceRequestStore(db),
		Notifications:   persistence.NewNotificationStore(db),
	}
}

// Close releases the database connection pool.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	c.logger.Info().Msg("catalog client closed")
	return nil
}

// Database returns the connection pool handle. Request middleware opens
// one unit of work per request on it.
func (c *Client) Database() database.Database {
	return c.db
}

// Logger returns the client's logger.
func (c *Client) Logger() zerolog.Logger {
	return c.logger
}

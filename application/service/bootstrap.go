package service

import (
	"context"
	"fmt"

	"github.com/axd-platform/catalog/infrastructure/bootstrap"
	"github.com/axd-platform/catalog/infrastructure/persistence"
	"github.com/axd-platform/catalog/internal/database"
	"github.com/rs/zerolog"
)

// SeedResult reports what Seed inserted.
type SeedResult struct {
	Services           int
	Assets             int
	Columns            int
	Samples            int
	Lineage            int
	Categories         int
	Types              int
	PermissionRequests int
	ServiceRequests    int
}

// Bootstrap resets the schema and loads the sample catalog.
type Bootstrap struct {
	db     database.Database
	stores Stores
	now    Clock
}

// NewBootstrap creates a new Bootstrap service.
func NewBootstrap(db database.Database, stores Stores, now Clock) *Bootstrap {
	return &Bootstrap{db: db, stores: stores, now: clockOrSystem(now)}
}

// Seed drops every catalog table, recreates the schema and inserts the
// embedded fixture. All existing data is lost.
func (s *Bootstrap) Seed(ctx context.Context) (SeedResult, error) {
	fixture, err := bootstrap.Load()
	if err != nil {
		return SeedResult{}, err
	}
	ds, err := fixture.Build(s.now())
	if err != nil {
		return SeedResult{}, fmt.Errorf("build fixture: %w", err)
	}

	err = database.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		if err := persistence.Reset(ctx, s.db); err != nil {
			return fmt.Errorf("reset schema: %w", err)
		}
		return s.insert(ctx, ds)
	})
	if err != nil {
		return SeedResult{}, err
	}

	result := SeedResult{
		Services:           len(ds.Services),
		Assets:             len(ds.Assets),
		Columns:            len(ds.Columns),
		Samples:            len(ds.Samples),
		Lineage:            len(ds.Lineage),
		Categories:         len(ds.Categories),
		Types:              len(ds.Types),
		PermissionRequests: len(ds.PermissionRequests),
		ServiceRequests:    len(ds.ServiceRequests),
	}
	zerolog.Ctx(ctx).Info().
		Int("services", result.Services).
		Int("assets", result.Assets).
		Int("columns", result.Columns).
		Msg("sample catalog loaded")
	return result, nil
}

func (s *Bootstrap) insert(ctx context.Context, ds bootstrap.Dataset) error {
	for _, svc := range ds.Services {
		if _, err := s.stores.Services.Create(ctx, svc); err != nil {
			return err
		}
	}
	for _, a := range ds.Assets {
		if _, err := s.stores.Assets.Create(ctx, a); err != nil {
			return err
		}
	}
	if err := s.stores.Columns.CreateBatch(ctx, ds.Columns); err != nil {
		return err
	}
	if err := s.stores.Samples.CreateBatch(ctx, ds.Samples); err != nil {
		return err
	}
	for _, edge := range ds.Lineage {
		if _, err := s.stores.Lineage.Create(ctx, edge); err != nil {
			return err
		}
	}
	for _, c := range ds.Categories {
		if _, err := s.stores.Categories.Create(ctx, c); err != nil {
			return err
		}
	}
	for _, t := range ds.Types {
		if _, err := s.stores.Types.Create(ctx, t); err != nil {
			return err
		}
	}
	for _, r := range ds.PermissionRequests {
		if _, err := s.stores.Requests.Create(ctx, r); err != nil {
			return err
		}
	}
	for _, r := range ds.ServiceRequests {
		if _, err := s.stores.ServiceRequests.Create(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

package service

import (
	"context"
	"fmt"

	"github.com/axd-platform/catalog/domain/access"
	"github.com/axd-platform/catalog/domain/asset"
	"github.com/axd-platform/catalog/domain/repository"
)

// DefaultPreviewLimit caps sample rows returned by Preview.
const DefaultPreviewLimit = 100

// Asset provides the read paths of the catalog and applies the
// visibility policy to every asset it returns.
type Asset struct {
	stores       Stores
	policy       access.Policy
	previewLimit int
	now          Clock
}

// NewAsset creates a new Asset service.
func NewAsset(stores Stores, policy access.Policy, previewLimit int, now Clock) *Asset {
	if previewLimit <= 0 {
		previewLimit = DefaultPreviewLimit
	}
	return &Asset{
		stores:       stores,
		policy:       policy,
		previewLimit: previewLimit,
		now:          clockOrSystem(now),
	}
}

// List returns assets, optionally restricted to a service, ordered by
// creation. An unknown service yields an empty list.
func (s *Asset) List(ctx context.Context, principal access.Principal, serviceID string) ([]access.View, error) {
	options := repository.WithCreatedOrder()
	if serviceID != "" {
		options = append(options, asset.WithServiceID(serviceID))
	}
	assets, err := s.stores.Assets.Find(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}

	ids := make([]string, len(assets))
	for i, a := range assets {
		ids[i] = a.ID()
	}
	grants, err := s.grantsFor(ctx, principal, ids)
	if err != nil {
		return nil, err
	}
	return s.policy.EvaluateAll(assets, principal, grants, s.now()), nil
}

// Get returns a single asset.
func (s *Asset) Get(ctx context.Context, principal access.Principal, id string) (access.View, error) {
	a, err := s.stores.Assets.FindOne(ctx, repository.WithID(id))
	if err != nil {
		return access.View{}, err
	}
	grants, err := s.grantsFor(ctx, principal, []string{id})
	if err != nil {
		return access.View{}, err
	}
	return s.policy.Evaluate(a, principal, grants, s.now()), nil
}

// grantsFor loads the principal's grants on the given assets in one query.
func (s *Asset) grantsFor(ctx context.Context, principal access.Principal, assetIDs []string) ([]access.Grant, error) {
	if !principal.Known() || len(assetIDs) == 0 {
		return nil, nil
	}
	grants, err := s.stores.Grants.Find(ctx, access.WithUserID(principal.ID()), access.WithAssetIDIn(assetIDs))
	if err != nil {
		return nil, fmt.Errorf("load permissions: %w", err)
	}
	return grants, nil
}

// Services returns all services ordered by name.
func (s *Asset) Services(ctx context.Context) ([]asset.Service, error) {
	services, err := s.stores.Services.Find(ctx, asset.WithNameOrder()...)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}

// Columns returns an asset's columns by ordinal position.
func (s *Asset) Columns(ctx context.Context, assetID string) ([]asset.Column, error) {
	columns, err := s.stores.Columns.Find(ctx, append(asset.WithOrdinalOrder(), asset.WithAssetID(assetID))...)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	return columns, nil
}

// Lineage returns every edge with the asset as source or target. Endpoint
// names of assets the principal may not see are redacted.
func (s *Asset) Lineage(ctx context.Context, principal access.Principal, assetID string) ([]asset.Lineage, error) {
	edges, err := s.stores.Lineage.Find(ctx, append(repository.WithCreatedOrder(), asset.WithTouching(assetID))...)
	if err != nil {
		return nil, fmt.Errorf("list lineage: %w", err)
	}

	ids := asset.AssetIDs(edges)
	if len(ids) == 0 {
		return edges, nil
	}
	referenced, err := s.stores.Assets.Find(ctx, repository.WithIDIn(ids))
	if err != nil {
		return nil, fmt.Errorf("load lineage assets: %w", err)
	}
	grants, err := s.grantsFor(ctx, principal, ids)
	if err != nil {
		return nil, err
	}
	return s.policy.RedactLineage(edges, referenced, principal, grants, s.now()), nil
}

// Comments returns an asset's comments as a flat list in creation order.
func (s *Asset) Comments(ctx context.Context, assetID string) ([]asset.Comment, error) {
	comments, err := s.stores.Comments.Find(ctx, append(repository.WithCreatedOrder(), asset.WithAssetID(assetID))...)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// CommentThreads returns an asset's comments arranged into reply trees.
func (s *Asset) CommentThreads(ctx context.Context, assetID string) ([]asset.Thread, error) {
	comments, err := s.Comments(ctx, assetID)
	if err != nil {
		return nil, err
	}
	return asset.BuildThreads(comments), nil
}

// Preview returns up to limit sample rows. A limit outside (0, max] is
// replaced by the configured maximum.
func (s *Asset) Preview(ctx context.Context, assetID string, limit int) ([]asset.SampleRow, error) {
	if limit <= 0 || limit > s.previewLimit {
		limit = s.previewLimit
	}
	options := append(repository.WithCreatedOrder(), asset.WithAssetID(assetID), repository.WithLimit(limit))
	rows, err := s.stores.Samples.Find(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("list sample rows: %w", err)
	}
	return rows, nil
}

package asset

import (
	"time"

	"github.com/axd-platform/catalog/domain/repository"
)

// WithAssetID filters by the "asset_id" column.
func WithAssetID(id string) repository.Option {
	return repository.WithCondition("asset_id", id)
}

// WithServiceID filters by the "service_id" column.
func WithServiceID(id string) repository.Option {
	return repository.WithCondition("service_id", id)
}

// WithTouching filters lineage edges where the asset is source or target.
func WithTouching(assetID string) repository.Option {
	return repository.WithWhere("source_asset_id = ? OR target_asset_id = ?", assetID, assetID)
}

// WithCreatedSince filters rows created at or after t.
func WithCreatedSince(t time.Time) repository.Option {
	return repository.WithWhere("created_at >= ?", t)
}

// WithOrdinalOrder orders columns by ordinal position.
func WithOrdinalOrder() []repository.Option {
	return []repository.Option{repository.WithOrderAsc("ordinal_position"), repository.WithOrderAsc("id")}
}

// WithNameOrder orders by name.
func WithNameOrder() []repository.Option {
	return []repository.Option{repository.WithOrderAsc("name"), repository.WithOrderAsc("id")}
}

package persistence

import (
	"context"
	"fmt"

	"github.com/axd-platform/catalog/domain/asset"
	"github.com/axd-platform/catalog/domain/repository"
	"github.com/axd-platform/catalog/internal/database"
)

// ServiceStore implements asset.ServiceStore using GORM.
type ServiceStore struct {
	database.Repository[asset.Service, ServiceModel]
}

// NewServiceStore creates a new ServiceStore.
func NewServiceStore(db database.Database) ServiceStore {
	return ServiceStore{
		Repository: database.NewRepository[asset.Service, ServiceModel](db, ServiceMapper{}, "service"),
	}
}

// AssetStore implements asset.AssetStore using GORM.
type AssetStore struct {
	database.Repository[asset.Asset, AssetModel]
	db database.Database
}

// NewAssetStore creates a new AssetStore.
func NewAssetStore(db database.Database) AssetStore {
	return AssetStore{
		Repository: database.NewRepository[asset.Asset, AssetModel](db, AssetMapper{}, "asset"),
		db:         db,
	}
}

// Delete removes an asset and everything it owns in one transaction.
// Dependent rows are removed explicitly so the behavior does not rely on
// the driver honoring ON DELETE CASCADE.
func (s AssetStore) Delete(ctx context.Context, id string) error {
	return database.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		session := s.db.Session(ctx)
		dependents := []any{&ColumnModel{}, &CommentModel{}, &GrantModel{}, &PermissionRequestModel{}, &SampleModel{}}
		for _, model := range dependents {
			if err := session.Where("asset_id = ?", id).Delete(model).Error; err != nil {
				return fmt.Errorf("delete %T for asset %s: %w", model, id, err)
			}
		}
		return s.DeleteBy(ctx, repository.WithID(id))
	})
}

// ColumnStore implements asset.ColumnStore using GORM.
type ColumnStore struct {
	database.Repository[asset.Column, ColumnModel]
}

// NewColumnStore creates a new ColumnStore.
func NewColumnStore(db database.Database) ColumnStore {
	return ColumnStore{
		Repository: database.NewRepository[asset.Column, ColumnModel](db, ColumnMapper{}, "column"),
	}
}

// LineageStore implements asset.LineageStore using GORM.
type LineageStore struct {
	database.Repository[asset.Lineage, LineageModel]
}

// NewLineageStore creates a new LineageStore.
func NewLineageStore(db database.Database) LineageStore {
	return LineageStore{
		Repository: database.NewRepository[asset.Lineage, LineageModel](db, LineageMapper{}, "lineage"),
	}
}

// CommentStore implements asset.CommentStore using GORM.
type CommentStore struct {
	database.Repository[asset.Comment, CommentModel]
}

// NewCommentStore creates a new CommentStore.
func NewCommentStore(db database.Database) CommentStore {
	return CommentStore{
		Repository: database.NewRepository[asset.Comment, CommentModel](db, CommentMapper{}, "comment"),
	}
}

// SampleStore implements asset.SampleStore using GORM.
type SampleStore struct {
	database.Repository[asset.SampleRow, SampleModel]
}

// NewSampleStore creates a new SampleStore.
func NewSampleStore(db database.Database) SampleStore {
	return SampleStore{
		Repository: database.NewRepository[asset.SampleRow, SampleModel](db, SampleMapper{}, "sample row"),
	}
}

var (
	_ asset.ServiceStore = ServiceStore{}
	_ asset.AssetStore   = AssetStore{}
	_ asset.ColumnStore  = ColumnStore{}
	_ asset.LineageStore = LineageStore{}
	_ asset.CommentStore = CommentStore{}
	_ asset.SampleStore  = SampleStore{}
)

package asset

import (
	"context"

	"github.com/axd-platform/catalog/domain/repository"
)

// ServiceStore defines operations for persisting and retrieving services.
type ServiceStore interface {
	repository.Store[Service]
	repository.Writer[Service]
}

// AssetStore defines operations for persisting and retrieving assets.
type AssetStore interface {
	repository.Store[Asset]
	repository.Writer[Asset]

	// Delete removes an asset together with its columns, comments, grants,
	// permission requests and sample rows.
	Delete(ctx context.Context, id string) error
}

// ColumnStore defines operations for persisting and retrieving columns.
type ColumnStore interface {
	repository.Store[Column]
	CreateBatch(ctx context.Context, columns []Column) error
}

// LineageStore defines operations for persisting and retrieving lineage edges.
type LineageStore interface {
	repository.Store[Lineage]
	Create(ctx context.Context, edge Lineage) (Lineage, error)
}

// CommentStore defines operations for persisting and retrieving comments.
type CommentStore interface {
	repository.Store[Comment]
	Create(ctx context.Context, comment Comment) (Comment, error)
}

// SampleStore defines operations for persisting and retrieving sample rows.
type SampleStore interface {
	repository.Store[SampleRow]
	CreateBatch(ctx context.Context, rows []SampleRow) error
}

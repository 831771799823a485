package request

import (
	"context"

	"github.com/axd-platform/catalog/domain/repository"
)

// CategoryStore defines operations for persisting and retrieving categories.
type CategoryStore interface {
	repository.Store[Category]
	Create(ctx context.Context, c Category) (Category, error)
}

// TypeStore defines operations for persisting and retrieving request types.
type TypeStore interface {
	repository.Store[Type]
	Create(ctx context.Context, t Type) (Type, error)
}

// ServiceRequestStore defines operations for persisting and retrieving service requests.
type ServiceRequestStore interface {
	repository.Store[ServiceRequest]
	Create(ctx context.Context, r ServiceRequest) (ServiceRequest, error)
}

// WithStatus filters service requests by status.
func WithStatus(status Status) repository.Option {
	return repository.WithCondition("status", string(status))
}

// WithCategoryIDIn filters request types by category.
func WithCategoryIDIn(ids []string) repository.Option {
	return repository.WithConditionIn("category_id", ids)
}

// WithSortOrder orders by sort_order then name.
func WithSortOrder() []repository.Option {
	return []repository.Option{repository.WithOrderAsc("sort_order"), repository.WithOrderAsc("name")}
}

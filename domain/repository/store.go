package repository

import "context"

// Store is the read side shared by every entity store.
type Store[T any] interface {
	Find(ctx context.Context, options ...Option) ([]T, error)
	FindOne(ctx context.Context, options ...Option) (T, error)
	Exists(ctx context.Context, options ...Option) (bool, error)
	Count(ctx context.Context, options ...Option) (int64, error)
}

// Writer adds creation and full-row updates to a Store.
type Writer[T any] interface {
	Create(ctx context.Context, entity T) (T, error)
	Save(ctx context.Context, entity T) (T, error)
}

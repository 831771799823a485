package access

import (
	"context"
	"time"

	"github.com/axd-platform/catalog/domain/repository"
)

// GrantStore defines operations for persisting and retrieving grants.
type GrantStore interface {
	repository.Store[Grant]
	repository.Writer[Grant]

	// CountActiveHolders returns the number of distinct principals holding
	// at least one active grant at now.
	CountActiveHolders(ctx context.Context, now time.Time) (int64, error)
}

// RequestStore defines operations for persisting and retrieving permission requests.
type RequestStore interface {
	repository.Store[Request]
	repository.Writer[Request]
}

// WithUserID filters grants by holder.
func WithUserID(id string) repository.Option {
	return repository.WithCondition("user_id", id)
}

// WithAssetID filters by the "asset_id" column.
func WithAssetID(id string) repository.Option {
	return repository.WithCondition("asset_id", id)
}

// WithAssetIDIn filters by several asset ids.
func WithAssetIDIn(ids []string) repository.Option {
	return repository.WithConditionIn("asset_id", ids)
}

// WithActiveAt filters grants that are neither revoked nor expired at now.
func WithActiveAt(now time.Time) []repository.Option {
	return []repository.Option{
		repository.WithNull("revoked_at"),
		repository.WithWhere("expires_at IS NULL OR expires_at > ?", now),
	}
}

// WithStatus filters requests by status.
func WithStatus(status Status) repository.Option {
	return repository.WithCondition("status", string(status))
}

// WithRequesterID filters requests by requester.
func WithRequesterID(id string) repository.Option {
	return repository.WithCondition("requester_id", id)
}

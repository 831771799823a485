package service

import (
	"context"
	"fmt"
	"time"

	"github.com/axd-platform/catalog/domain/access"
	"github.com/axd-platform/catalog/domain/asset"
	"github.com/axd-platform/catalog/domain/request"
)

// Stats summarizes catalog activity for the admin dashboard.
type Stats struct {
	PendingPermissions int64
	PendingRequests    int64
	NewComments        int64
	ActiveUsers        int64
}

// Dashboard computes admin statistics.
type Dashboard struct {
	stores Stores
	now    Clock
}

// NewDashboard creates a new Dashboard service.
func NewDashboard(stores Stores, now Clock) *Dashboard {
	return &Dashboard{stores: stores, now: clockOrSystem(now)}
}

// Stats counts pending permission requests, submitted service requests,
// comments from the last day, and distinct holders of active grants.
func (s *Dashboard) Stats(ctx context.Context) (Stats, error) {
	now := s.now()

	pendingPermissions, err := s.stores.Requests.Count(ctx, access.WithStatus(access.StatusPending))
	if err != nil {
		return Stats{}, fmt.Errorf("count pending permission requests: %w", err)
	}
	pendingRequests, err := s.stores.ServiceRequests.Count(ctx, request.WithStatus(request.StatusSubmitted))
	if err != nil {
		return Stats{}, fmt.Errorf("count submitted service requests: %w", err)
	}
	newComments, err := s.stores.Comments.Count(ctx, asset.WithCreatedSince(now.Add(-24*time.Hour)))
	if err != nil {
		return Stats{}, fmt.Errorf("count recent comments: %w", err)
	}
	activeUsers, err := s.stores.Grants.CountActiveHolders(ctx, now)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		PendingPermissions: pendingPermissions,
		PendingRequests:    pendingRequests,
		NewComments:        newComments,
		ActiveUsers:        activeUsers,
	}, nil
}

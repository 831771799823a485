package service

import (
	"time"

	"github.com/axd-platform/catalog/domain/access"
	"github.com/axd-platform/catalog/domain/asset"
	"github.com/axd-platform/catalog/domain/notification"
	"github.com/axd-platform/catalog/domain/request"
)

// Stores groups the entity stores the services share.
type Stores struct {
	Services        asset.ServiceStore
	Assets          asset.AssetStore
	Columns         asset.ColumnStore
	Lineage         asset.LineageStore
	Comments        asset.CommentStore
	Samples         asset.SampleStore
	Grants          access.GrantStore
	Requests        access.RequestStore
	Categories      request.CategoryStore
	Types           request.TypeStore
	ServiceRequests request.ServiceRequestStore
	Notifications   notification.Store
}

// Clock returns the current time.
type Clock func() time.Time

// SystemClock returns the current UTC time.
func SystemClock() time.Time {
	return time.Now().UTC()
}

func clockOrSystem(c Clock) Clock {
	if c == nil {
		return SystemClock
	}
	return c
}

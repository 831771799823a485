package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/axd-platform/catalog/domain/access"
	"github.com/axd-platform/catalog/internal/database"
)

// GrantStore implements access.GrantStore using GORM.
type GrantStore struct {
	database.Repository[access.Grant, GrantModel]
}

// NewGrantStore creates a new GrantStore.
func NewGrantStore(db database.Database) GrantStore {
	return GrantStore{
		Repository: database.NewRepository[access.Grant, GrantModel](db, GrantMapper{}, "permission"),
	}
}

// CountActiveHolders returns the number of distinct users holding an
// active grant at now.
func (s GrantStore) CountActiveHolders(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	db := database.ApplyConditions(s.DB(ctx).Model(&GrantModel{}), access.WithActiveAt(now)...)
	if err := db.Distinct("user_id").Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count active permission holders: %w", err)
	}
	return count, nil
}

// RequestStore implements access.RequestStore using GORM.
type RequestStore struct {
	database.Repository[access.Request, PermissionRequestModel]
}

// NewRequestStore creates a new RequestStore.
func NewRequestStore(db database.Database) RequestStore {
	return RequestStore{
		Repository: database.NewRepository[access.Request, PermissionRequestModel](db, PermissionRequestMapper{}, "permission request"),
	}
}

var (
	_ access.GrantStore   = GrantStore{}
	_ access.RequestStore = RequestStore{}
)

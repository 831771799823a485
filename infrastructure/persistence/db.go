// Package persistence provides database storage implementations.
package persistence

import (
	"context"
	"fmt"

	"github.com/axd-platform/catalog/internal/database"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// models lists every table in dependency order, parents first.
func models() []any {
	return []any{
		&ServiceModel{},
		&AssetModel{},
		&ColumnModel{},
		&LineageModel{},
		&CommentModel{},
		&GrantModel{},
		&PermissionRequestModel{},
		&SampleModel{},
		&CategoryModel{},
		&RequestTypeModel{},
		&ServiceRequestModel{},
		&NotificationModel{},
	}
}

// AutoMigrate runs GORM auto migration for all models.
func AutoMigrate(db database.Database) error {
	return migrate(db.GORM())
}

// Reset drops every catalog table and recreates the schema. It runs on the
// session bound to ctx so it can share a caller's transaction.
func Reset(ctx context.Context, db database.Database) error {
	session := db.Session(ctx)
	all := models()
	for i := len(all) - 1; i >= 0; i-- {
		if err := session.Migrator().DropTable(all[i]); err != nil {
			return fmt.Errorf("drop table %T: %w", all[i], err)
		}
	}
	zerolog.Ctx(ctx).Warn().Int("tables", len(all)).Msg("catalog schema dropped")
	return migrate(session)
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

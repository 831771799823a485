package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/axd-platform/catalog"
	"github.com/axd-platform/catalog/application/service"
	"github.com/axd-platform/catalog/domain/access"
	"github.com/axd-platform/catalog/domain/asset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresDatabase(t *testing.T) {
	_, err := catalog.New()
	assert.ErrorIs(t, err, catalog.ErrNoDatabase)
}

func TestNew_WithSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	client, err := catalog.New(catalog.WithSQLite(dbPath))
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, client.Close())
	}()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestNew_RejectsUnknownDriver(t *testing.T) {
	_, err := catalog.New(catalog.WithDatabaseURL("mysql://localhost/catalog"))
	assert.Error(t, err)
}

func TestClient_Close_Idempotent(t *testing.T) {
	client, err := catalog.New(catalog.WithSQLite(filepath.Join(t.TempDir(), "catalog.db")))
	require.NoError(t, err)

	require.NoError(t, client.Close())
	assert.ErrorIs(t, client.Close(), catalog.ErrClientClosed)
}

func TestClient_SeededCatalogVisibility(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	client, err := catalog.New(
		catalog.WithSQLite(filepath.Join(t.TempDir(), "catalog.db")),
		catalog.WithClock(func() time.Time { return now }),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	_, err = client.Bootstrap.Seed(ctx)
	require.NoError(t, err)

	user := access.NewPrincipal("user-9", "Analyst", "analyst@example.com")
	views, err := client.Assets.List(ctx, user, "")
	require.NoError(t, err)
	require.Len(t, views, 32)

	var confidential access.View
	for _, v := range views {
		if v.Asset().Sensitivity() == asset.SensitivityPublic {
			assert.False(t, v.IsMasked())
			assert.NotEqual(t, asset.RedactedName, v.Asset().Name())
			continue
		}
		assert.True(t, v.IsMasked())
		assert.False(t, v.HasPermission())
		assert.Equal(t, asset.RedactedName, v.Asset().Name())
		if v.Asset().Sensitivity() == asset.SensitivityConfidential && confidential.Asset().ID() == "" {
			confidential = v
		}
	}
	require.NotEmpty(t, confidential.Asset().ID())

	admin := access.NewPrincipal("admin", "Admin", "")
	req, err := client.Access.Request(ctx, service.PermissionRequestParams{
		AssetID:   confidential.Asset().ID(),
		Requester: user,
		Purpose:   "reporting",
		Duration:  "permanent",
	})
	require.NoError(t, err)
	_, _, err = client.Access.Approve(ctx, req.ID(), admin, "")
	require.NoError(t, err)

	got, err := client.Assets.Get(ctx, user, confidential.Asset().ID())
	require.NoError(t, err)
	assert.True(t, got.HasPermission())
	assert.NotEqual(t, asset.RedactedName, got.Asset().Name())

	_, err = client.Assets.Get(ctx, user, "missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

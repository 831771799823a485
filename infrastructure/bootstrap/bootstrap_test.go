package bootstrap

import (
	"testing"
	"time"

	"github.com/axd-platform/catalog/domain/access"
	"github.com/axd-platform/catalog/domain/asset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedFixtureBuilds(t *testing.T) {
	f, err := Load()
	require.NoError(t, err)

	ds, err := f.Build(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Len(t, ds.Services, 3)
	assert.Len(t, ds.Assets, 32)
	assert.Len(t, ds.Columns, 32*5)
	assert.Len(t, ds.Samples, 32)
	assert.NotEmpty(t, ds.Lineage)
	assert.NotEmpty(t, ds.Categories)
	assert.NotEmpty(t, ds.Types)
	require.Len(t, ds.PermissionRequests, 1)
	assert.Equal(t, access.StatusPending, ds.PermissionRequests[0].Status())
	assert.Len(t, ds.ServiceRequests, 1)
}

func TestBuild_RequiresPermissionFollowsSensitivity(t *testing.T) {
	f, err := Load()
	require.NoError(t, err)
	ds, err := f.Build(time.Now().UTC())
	require.NoError(t, err)

	for _, a := range ds.Assets {
		assert.Equal(t, a.Sensitivity() != asset.SensitivityPublic, a.RequiresPermission(), a.Name())
	}
}

func TestBuild_ColumnsHaveOrdinalPositions(t *testing.T) {
	f, err := Load()
	require.NoError(t, err)
	ds, err := f.Build(time.Now().UTC())
	require.NoError(t, err)

	positions := map[string][]int{}
	for _, c := range ds.Columns {
		positions[c.AssetID()] = append(positions[c.AssetID()], c.OrdinalPosition())
	}
	for id, got := range positions {
		assert.Equal(t, []int{1, 2, 3, 4, 5}, got, id)
	}
}

func TestBuild_StaggersCreationTimes(t *testing.T) {
	f, err := Load()
	require.NoError(t, err)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	ds, err := f.Build(start)
	require.NoError(t, err)

	for i := 1; i < len(ds.Assets); i++ {
		assert.True(t, ds.Assets[i].CreatedAt().After(ds.Assets[i-1].CreatedAt()))
	}
}

func TestBuild_RejectsUnknownReferences(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"service", "assets: [{name: a, schema: s, database: d, service: missing, sensitivity: public}]"},
		{"sensitivity", "services: [{key: k, name: K}]\nassets: [{name: a, schema: s, database: d, service: k, sensitivity: secret}]"},
		{"lineage", "lineage: [{source: d.s.a, target: d.s.b}]"},
		{"request type", "service_requests: [{type: nope, title: x}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			_, err = f.Build(time.Now().UTC())
			assert.Error(t, err)
		})
	}
}

package asset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAsset_DerivesRequiresPermission(t *testing.T) {
	tests := []struct {
		sensitivity Sensitivity
		want        bool
	}{
		{SensitivityPublic, false},
		{SensitivityInternal, true},
		{SensitivityPrivate, true},
		{SensitivityConfidential, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.sensitivity), func(t *testing.T) {
			a := NewAsset("orders", "public", "sales_db", tt.sensitivity)
			assert.Equal(t, tt.want, a.RequiresPermission())
			assert.NotEmpty(t, a.ID())
		})
	}
}

func TestParseSensitivity(t *testing.T) {
	s, err := ParseSensitivity("confidential")
	require.NoError(t, err)
	assert.Equal(t, SensitivityConfidential, s)

	_, err = ParseSensitivity("secret")
	assert.ErrorIs(t, err, ErrInvalidSensitivity)
}

func TestAsset_Redacted(t *testing.T) {
	a := NewAsset("salaries", "hr", "analytics_db", SensitivityConfidential).
		WithDescription("monthly pay").
		WithBusinessDefinition("gross salary per employee")

	nameOnly := a.Redacted(false)
	assert.Equal(t, RedactedName, nameOnly.Name())
	assert.Equal(t, "monthly pay", nameOnly.Description())

	full := a.Redacted(true)
	assert.Empty(t, full.Description())
	assert.Empty(t, full.BusinessDefinition())

	assert.Equal(t, "salaries", a.Name(), "original value unchanged")
}

func TestAsset_OwnerNameIsStoredValue(t *testing.T) {
	a := NewAsset("users", "public", "analytics_db", SensitivityPublic).
		WithOwner(NewOwner("owner-1", "", ""))

	assert.Equal(t, "owner-1", a.Owner().ID())
	assert.Empty(t, a.Owner().Name())
}

func TestAsset_TagsAreCopied(t *testing.T) {
	tags := []string{"pii"}
	a := NewAsset("users", "public", "analytics_db", SensitivityInternal).WithTags(tags)
	tags[0] = "changed"

	got := a.Tags()
	assert.Equal(t, "pii", got[0])
	got[0] = "again"
	assert.Equal(t, "pii", a.Tags()[0], "mutating Tags() result changed the asset")
}

func TestLineage_Touches(t *testing.T) {
	l := NewLineage(NewEndpoint("a", "orders", ""), NewEndpoint("b", "orders_daily", "view"), "", "")

	assert.True(t, l.Touches("a"))
	assert.True(t, l.Touches("b"))
	assert.False(t, l.Touches("c"))
	assert.False(t, l.Touches(""))
	assert.Equal(t, DefaultTransformation, l.Transformation())
	assert.Equal(t, DefaultEndpointType, l.Source().Type())
}

func TestLineage_RedactedEndpoints(t *testing.T) {
	l := NewLineage(NewEndpoint("a", "hr.salaries", ""), NewEndpoint("", "exports/pay.csv", "file"), "", "")

	redacted := l.WithEndpoints(l.Source().Redacted(), l.Target())
	assert.Equal(t, RedactedName, redacted.Source().Name())
	assert.Equal(t, "a", redacted.Source().AssetID())
	assert.Equal(t, "exports/pay.csv", redacted.Target().Name())
	assert.Equal(t, l.ID(), redacted.ID())
	assert.Equal(t, "hr.salaries", l.Source().Name())
}

func TestAssetIDs(t *testing.T) {
	edges := []Lineage{
		NewLineage(NewEndpoint("a", "x", ""), NewEndpoint("b", "y", ""), "", ""),
		NewLineage(NewEndpoint("", "ext", "file"), NewEndpoint("a", "x", ""), "", ""),
	}
	assert.Equal(t, []string{"a", "b"}, AssetIDs(edges))
	assert.Empty(t, AssetIDs(nil))
}

func TestSampleRow_DataIsCopy(t *testing.T) {
	data := map[string]any{"id": 1}
	row := NewSampleRow("a", data)
	data["id"] = 2

	assert.Equal(t, 1, row.Data()["id"])
}

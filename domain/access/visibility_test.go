package access

import (
	"context"
	"testing"
	"time"

	"github.com/axd-platform/catalog/domain/asset"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func grantFor(a asset.Asset, holder Principal, expires, revoked time.Time) Grant {
	return ReconstructGrant("g-"+holder.ID(), a.ID(), holder, LevelViewer, NewPrincipal("admin", "", ""),
		now.Add(-time.Hour), expires, revoked, "")
}

func TestPolicy_PublicAssetIsNeverMasked(t *testing.T) {
	a := asset.NewAsset("products", "public", "analytics_db", asset.SensitivityPublic)
	policy := NewPolicy(false)

	for _, p := range []Principal{Anonymous(), NewPrincipal("u1", "", "")} {
		v := policy.Evaluate(a, p, nil, now)
		assert.False(t, v.IsMasked())
		assert.False(t, v.HasPermission())
		assert.Equal(t, "products", v.Asset().Name())
	}
}

func TestPolicy_SensitiveWithoutGrantIsRedacted(t *testing.T) {
	a := asset.NewAsset("salaries", "hr", "analytics_db", asset.SensitivityConfidential).
		WithDescription("pay")

	v := NewPolicy(false).Evaluate(a, NewPrincipal("u1", "", ""), nil, now)

	assert.True(t, v.IsMasked())
	assert.False(t, v.HasPermission())
	assert.Equal(t, asset.RedactedName, v.Asset().Name())
	assert.Equal(t, "pay", v.Asset().Description())
}

func TestPolicy_MaskFreeText(t *testing.T) {
	a := asset.NewAsset("salaries", "hr", "analytics_db", asset.SensitivityConfidential).
		WithDescription("pay").
		WithBusinessDefinition("gross pay")

	v := NewPolicy(true).Evaluate(a, Anonymous(), nil, now)

	assert.Equal(t, "", v.Asset().Description())
	assert.Equal(t, "", v.Asset().BusinessDefinition())
}

func TestPolicy_GrantStates(t *testing.T) {
	a := asset.NewAsset("salaries", "hr", "analytics_db", asset.SensitivityConfidential)
	u := NewPrincipal("u1", "", "")
	other := NewPrincipal("u2", "", "")

	tests := []struct {
		name      string
		principal Principal
		grants    []Grant
		want      bool
	}{
		{"permanent grant", u, []Grant{grantFor(a, u, time.Time{}, time.Time{})}, true},
		{"future expiry", u, []Grant{grantFor(a, u, now.Add(time.Hour), time.Time{})}, true},
		{"expired", u, []Grant{grantFor(a, u, now.Add(-time.Second), time.Time{})}, false},
		{"expires exactly now", u, []Grant{grantFor(a, u, now, time.Time{})}, false},
		{"revoked", u, []Grant{grantFor(a, u, time.Time{}, now.Add(-time.Minute))}, false},
		{"someone else's grant", u, []Grant{grantFor(a, other, time.Time{}, time.Time{})}, false},
		{"anonymous", Anonymous(), []Grant{grantFor(a, Anonymous(), time.Time{}, time.Time{})}, false},
		{"no grants", u, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewPolicy(false).Evaluate(a, tt.principal, tt.grants, now)
			assert.True(t, v.IsMasked(), "isMasked mirrors requires_permission")
			assert.Equal(t, tt.want, v.HasPermission())
			if tt.want {
				assert.Equal(t, "salaries", v.Asset().Name())
			} else {
				assert.Equal(t, asset.RedactedName, v.Asset().Name())
			}
		})
	}
}

func TestPolicy_GrantForOtherAssetDoesNotApply(t *testing.T) {
	a := asset.NewAsset("salaries", "hr", "analytics_db", asset.SensitivityConfidential)
	b := asset.NewAsset("benefits", "hr", "analytics_db", asset.SensitivityConfidential)
	u := NewPrincipal("u1", "", "")

	v := NewPolicy(false).Evaluate(a, u, []Grant{grantFor(b, u, time.Time{}, time.Time{})}, now)

	assert.False(t, v.HasPermission())
}

func TestPolicy_EvaluateAllPreservesOrder(t *testing.T) {
	a := asset.NewAsset("a", "s", "d", asset.SensitivityConfidential)
	b := asset.NewAsset("b", "s", "d", asset.SensitivityPublic)
	c := asset.NewAsset("c", "s", "d", asset.SensitivityInternal)
	u := NewPrincipal("u1", "", "")

	views := NewPolicy(false).EvaluateAll([]asset.Asset{a, b, c}, u, []Grant{grantFor(c, u, time.Time{}, time.Time{})}, now)

	names := []string{views[0].Asset().Name(), views[1].Asset().Name(), views[2].Asset().Name()}
	assert.Equal(t, []string{asset.RedactedName, "b", "c"}, names)
	assert.True(t, views[2].HasPermission())
}

func TestPrincipalFrom(t *testing.T) {
	ctx := context.Background()
	assert.False(t, PrincipalFrom(ctx).Known())

	ctx = WithPrincipal(ctx, NewPrincipal("u1", "", "u1@example.com"))
	p := PrincipalFrom(ctx)
	assert.True(t, p.Known())
	assert.Equal(t, "u1", p.Name(), "name falls back to id")
}

func TestPolicy_RedactLineage(t *testing.T) {
	employees := asset.NewAsset("employees", "hr", "analytics_db", asset.SensitivityConfidential)
	products := asset.NewAsset("products", "public", "analytics_db", asset.SensitivityPublic)
	edges := []asset.Lineage{
		asset.NewLineage(
			asset.NewEndpoint(employees.ID(), "analytics_db.hr.employees", ""),
			asset.NewEndpoint(products.ID(), "analytics_db.public.products", ""),
			"", "",
		),
		asset.NewLineage(
			asset.NewEndpoint("", "s3://exports/employees.csv", "file"),
			asset.NewEndpoint(employees.ID(), "analytics_db.hr.employees", ""),
			"", "",
		),
	}
	assets := []asset.Asset{employees, products}
	policy := NewPolicy(false)

	got := policy.RedactLineage(edges, assets, Anonymous(), nil, now)
	assert.Equal(t, asset.RedactedName, got[0].Source().Name())
	assert.Equal(t, "analytics_db.public.products", got[0].Target().Name())
	assert.Equal(t, "s3://exports/employees.csv", got[1].Source().Name())
	assert.Equal(t, asset.RedactedName, got[1].Target().Name())
	assert.Equal(t, employees.ID(), got[1].Target().AssetID())
	assert.Equal(t, "analytics_db.hr.employees", edges[0].Source().Name(), "input untouched")

	holder := NewPrincipal("u1", "", "")
	got = policy.RedactLineage(edges, assets, holder, []Grant{grantFor(employees, holder, time.Time{}, time.Time{})}, now)
	assert.Equal(t, "analytics_db.hr.employees", got[0].Source().Name())

	expired := grantFor(employees, holder, now.Add(-time.Minute), time.Time{})
	got = policy.RedactLineage(edges, assets, holder, []Grant{expired}, now)
	assert.Equal(t, asset.RedactedName, got[1].Target().Name())
}

package access

import (
	"time"

	"github.com/axd-platform/catalog/domain/asset"
)

// View is an asset as presented to one principal.
type View struct {
	asset         asset.Asset
	isMasked      bool
	hasPermission bool
}

// Asset returns the asset, redacted when the principal may not see it.
func (v View) Asset() asset.Asset { return v.asset }

// IsMasked reports whether the asset requires a grant to be seen.
func (v View) IsMasked() bool { return v.isMasked }

// HasPermission reports whether the principal holds an active grant.
func (v View) HasPermission() bool { return v.hasPermission }

// Policy decides how assets are presented to principals.
type Policy struct {
	maskFreeText bool
}

// NewPolicy creates a Policy. With maskFreeText set, redaction also blanks
// the description and business definition.
func NewPolicy(maskFreeText bool) Policy {
	return Policy{maskFreeText: maskFreeText}
}

// Evaluate presents a to principal given the grants known for the pair.
// An anonymous principal never has permission. Evaluate never fails.
func (p Policy) Evaluate(a asset.Asset, principal Principal, grants []Grant, now time.Time) View {
	v := View{
		asset:    a,
		isMasked: a.RequiresPermission(),
	}
	for _, g := range grants {
		if g.Covers(a.ID(), principal, now) {
			v.hasPermission = true
			break
		}
	}
	if v.isMasked && !v.hasPermission {
		v.asset = a.Redacted(p.maskFreeText)
	}
	return v
}

// EvaluateAll presents each asset, preserving order.
func (p Policy) EvaluateAll(assets []asset.Asset, principal Principal, grants []Grant, now time.Time) []View {
	byAsset := make(map[string][]Grant, len(grants))
	for _, g := range grants {
		byAsset[g.AssetID()] = append(byAsset[g.AssetID()], g)
	}
	views := make([]View, len(assets))
	for i, a := range assets {
		views[i] = p.Evaluate(a, principal, byAsset[a.ID()], now)
	}
	return views
}

// RedactLineage hides the endpoint names of assets the principal may not
// see. assets holds the catalog assets the edges reference; endpoints that
// point outside it keep their names.
func (p Policy) RedactLineage(edges []asset.Lineage, assets []asset.Asset, principal Principal, grants []Grant, now time.Time) []asset.Lineage {
	hidden := make(map[string]bool, len(assets))
	for _, v := range p.EvaluateAll(assets, principal, grants, now) {
		if v.IsMasked() && !v.HasPermission() {
			hidden[v.Asset().ID()] = true
		}
	}

	out := make([]asset.Lineage, len(edges))
	for i, e := range edges {
		source, target := e.Source(), e.Target()
		if hidden[source.AssetID()] {
			source = source.Redacted()
		}
		if hidden[target.AssetID()] {
			target = target.Redacted()
		}
		out[i] = e.WithEndpoints(source, target)
	}
	return out
}

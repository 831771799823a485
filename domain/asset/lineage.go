package asset

import (
	"time"

	"github.com/google/uuid"
)

// Default lineage values.
const (
	DefaultTransformation = "ETL"
	DefaultEndpointType   = "table"
)

// Endpoint is one side of a lineage edge. The asset id may be empty or
// reference an asset outside the catalog.
type Endpoint struct {
	assetID string
	name    string
	typ     string
}

// NewEndpoint creates an Endpoint. An empty type defaults to "table".
func NewEndpoint(assetID, name, typ string) Endpoint {
	if typ == "" {
		typ = DefaultEndpointType
	}
	return Endpoint{assetID: assetID, name: name, typ: typ}
}

// AssetID returns the referenced asset id, or empty.
func (e Endpoint) AssetID() string { return e.assetID }

// Name returns the display name of the endpoint.
func (e Endpoint) Name() string { return e.name }

// Type returns the kind of object (table, view, file, ...).
func (e Endpoint) Type() string { return e.typ }

// Redacted returns a copy with the name replaced by RedactedName.
func (e Endpoint) Redacted() Endpoint {
	e.name = RedactedName
	return e
}

// Lineage is a directed edge recording that source data feeds target.
type Lineage struct {
	id             string
	source         Endpoint
	target         Endpoint
	transformation string
	summary        string
	createdAt      time.Time
}

// NewLineage creates an edge that has not been persisted.
func NewLineage(source, target Endpoint, transformation, summary string) Lineage {
	if transformation == "" {
		transformation = DefaultTransformation
	}
	return Lineage{
		id:             uuid.NewString(),
		source:         source,
		target:         target,
		transformation: transformation,
		summary:        summary,
		createdAt:      time.Now().UTC(),
	}
}

// ReconstructLineage recreates an edge from persistence.
func ReconstructLineage(id string, source, target Endpoint, transformation, summary string, createdAt time.Time) Lineage {
	return Lineage{
		id:             id,
		source:         source,
		target:         target,
		transformation: transformation,
		summary:        summary,
		createdAt:      createdAt,
	}
}

// ID returns the edge id.
func (l Lineage) ID() string { return l.id }

// Source returns the upstream endpoint.
func (l Lineage) Source() Endpoint { return l.source }

// Target returns the downstream endpoint.
func (l Lineage) Target() Endpoint { return l.target }

// Transformation returns the transformation type, e.g. ETL.
func (l Lineage) Transformation() string { return l.transformation }

// Summary returns the free-text description of the transformation logic.
func (l Lineage) Summary() string { return l.summary }

// CreatedAt returns the creation time.
func (l Lineage) CreatedAt() time.Time { return l.createdAt }

// WithEndpoints returns a copy of the edge with the given endpoints.
func (l Lineage) WithEndpoints(source, target Endpoint) Lineage {
	l.source = source
	l.target = target
	return l
}

// AssetIDs returns the catalog asset ids referenced by the edges, without
// duplicates, in first-seen order.
func AssetIDs(edges []Lineage) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, l := range edges {
		for _, id := range []string{l.source.assetID, l.target.assetID} {
			if id != "" && !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// Touches reports whether the asset is the source or the target of the edge.
func (l Lineage) Touches(assetID string) bool {
	return assetID != "" && (l.source.assetID == assetID || l.target.assetID == assetID)
}

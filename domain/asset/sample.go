package asset

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// SampleRow is one example row of an asset, kept as an opaque document for
// preview display.
type SampleRow struct {
	id        string
	assetID   string
	data      map[string]any
	createdAt time.Time
}

// NewSampleRow creates a sample row that has not been persisted.
func NewSampleRow(assetID string, data map[string]any) SampleRow {
	return SampleRow{
		id:        uuid.NewString(),
		assetID:   assetID,
		data:      maps.Clone(data),
		createdAt: time.Now().UTC(),
	}
}

// ReconstructSampleRow recreates a sample row from persistence.
func ReconstructSampleRow(id, assetID string, data map[string]any, createdAt time.Time) SampleRow {
	return SampleRow{id: id, assetID: assetID, data: data, createdAt: createdAt}
}

// ID returns the row id.
func (s SampleRow) ID() string { return s.id }

// AssetID returns the asset the row belongs to.
func (s SampleRow) AssetID() string { return s.assetID }

// Data returns a shallow copy of the row payload.
func (s SampleRow) Data() map[string]any {
	if s.data == nil {
		return map[string]any{}
	}
	return maps.Clone(s.data)
}

// CreatedAt returns the creation time.
func (s SampleRow) CreatedAt() time.Time { return s.createdAt }

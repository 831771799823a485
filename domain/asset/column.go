package asset

import "github.com/google/uuid"

// Column describes one column of an asset. Columns are displayed in
// ordinal position order, which is unique within an asset.
type Column struct {
	id              string
	assetID         string
	name            string
	dataType        string
	description     string
	nullable        bool
	pii             bool
	nullRatio       float64
	freshness       string
	ordinalPosition int
}

// NewColumn creates a nullable column that has not been persisted.
func NewColumn(assetID, name, dataType string, ordinalPosition int) Column {
	return Column{
		id:              uuid.NewString(),
		assetID:         assetID,
		name:            name,
		dataType:        dataType,
		nullable:        true,
		freshness:       "good",
		ordinalPosition: ordinalPosition,
	}
}

// ReconstructColumn recreates a column from persistence.
func ReconstructColumn(
	id, assetID, name, dataType, description string,
	nullable, pii bool,
	nullRatio float64,
	freshness string,
	ordinalPosition int,
) Column {
	return Column{
		id:              id,
		assetID:         assetID,
		name:            name,
		dataType:        dataType,
		description:     description,
		nullable:        nullable,
		pii:             pii,
		nullRatio:       nullRatio,
		freshness:       freshness,
		ordinalPosition: ordinalPosition,
	}
}

// ID returns the column id.
func (c Column) ID() string { return c.id }

// AssetID returns the owning asset id.
func (c Column) AssetID() string { return c.assetID }

// Name returns the column name.
func (c Column) Name() string { return c.name }

// DataType returns the declared data type.
func (c Column) DataType() string { return c.dataType }

// Description returns the column description.
func (c Column) Description() string { return c.description }

// Nullable reports whether the column accepts nulls.
func (c Column) Nullable() bool { return c.nullable }

// NullRatio returns the recorded share of null values. It is stored, not computed.
func (c Column) NullRatio() float64 { return c.nullRatio }

// Freshness returns the recorded freshness label.
func (c Column) Freshness() string { return c.freshness }

// OrdinalPosition returns the display position within the asset.
func (c Column) OrdinalPosition() int { return c.ordinalPosition }

// WithDescription returns a copy with the description set.
func (c Column) WithDescription(description string) Column {
	c.description = description
	return c
}

// WithNullable returns a copy with nullability set.
func (c Column) WithNullable(nullable bool) Column {
	c.nullable = nullable
	return c
}

// PII reports whether the column holds personal data.
func (c Column) PII() bool { return c.pii }

// WithPII returns a copy with the personal data flag set.
func (c Column) WithPII(pii bool) Column {
	c.pii = pii
	return c
}

// WithQuality returns a copy with data quality indicators set.
func (c Column) WithQuality(nullRatio float64, freshness string) Column {
	c.nullRatio = nullRatio
	if freshness != "" {
		c.freshness = freshness
	}
	return c
}

// Package asset provides domain types for cataloged data assets and the
// metadata attached to them.
package asset

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RedactedName replaces the name of an asset the caller may not see.
const RedactedName = "****"

// ErrInvalidSensitivity indicates an unknown sensitivity level.
var ErrInvalidSensitivity = errors.New("invalid sensitivity level")

// Sensitivity is the coarse classification driving default permission requirements.
type Sensitivity string

// Sensitivity values.
const (
	SensitivityPublic       Sensitivity = "public"
	SensitivityInternal     Sensitivity = "internal"
	SensitivityPrivate      Sensitivity = "private"
	SensitivityConfidential Sensitivity = "confidential"
)

// ParseSensitivity validates a sensitivity level string.
func ParseSensitivity(s string) (Sensitivity, error) {
	switch v := Sensitivity(s); v {
	case SensitivityPublic, SensitivityInternal, SensitivityPrivate, SensitivityConfidential:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSensitivity, s)
	}
}

// RequiresPermission reports whether assets of this level need a grant to be seen.
func (s Sensitivity) RequiresPermission() bool {
	return s != SensitivityPublic
}

// DocLink is a titled link to external documentation.
type DocLink struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// Owner identifies who is accountable for an asset.
type Owner struct {
	id    string
	name  string
	email string
}

// NewOwner creates an Owner.
func NewOwner(id, name, email string) Owner {
	return Owner{id: id, name: name, email: email}
}

// ID returns the owner's user id, which may be empty.
func (o Owner) ID() string { return o.id }

// Name returns the owner's display name.
func (o Owner) Name() string { return o.name }

// Email returns the owner's email address.
func (o Owner) Email() string { return o.email }

// Asset is a cataloged data object, typically a database table.
type Asset struct {
	id                 string
	name               string
	description        string
	schemaName         string
	databaseName       string
	serviceID          string
	owner              Owner
	tags               []string
	businessDefinition string
	docLinks           []DocLink
	sensitivity        Sensitivity
	requiresPermission bool
	createdAt          time.Time
	updatedAt          time.Time
}

// NewAsset creates an asset that has not been persisted. The permission
// requirement is derived from the sensitivity level.
func NewAsset(name, schemaName, databaseName string, sensitivity Sensitivity) Asset {
	now := time.Now().UTC()
	return Asset{
		id:                 uuid.NewString(),
		name:               name,
		schemaName:         schemaName,
		databaseName:       databaseName,
		tags:               []string{},
		docLinks:           []DocLink{},
		sensitivity:        sensitivity,
		requiresPermission: sensitivity.RequiresPermission(),
		createdAt:          now,
		updatedAt:          now,
	}
}

// ReconstructAsset recreates an asset from persistence.
func ReconstructAsset(
	id, name, description, schemaName, databaseName, serviceID string,
	owner Owner,
	tags []string,
	businessDefinition string,
	docLinks []DocLink,
	sensitivity Sensitivity,
	requiresPermission bool,
	createdAt, updatedAt time.Time,
) Asset {
	return Asset{
		id:                 id,
		name:               name,
		description:        description,
		schemaName:         schemaName,
		databaseName:       databaseName,
		serviceID:          serviceID,
		owner:              owner,
		tags:               copyStrings(tags),
		businessDefinition: businessDefinition,
		docLinks:           copyLinks(docLinks),
		sensitivity:        sensitivity,
		requiresPermission: requiresPermission,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// ID returns the asset id.
func (a Asset) ID() string { return a.id }

// Name returns the asset name.
func (a Asset) Name() string { return a.name }

// Description returns the free-text description.
func (a Asset) Description() string { return a.description }

// SchemaName returns the schema the asset lives in.
func (a Asset) SchemaName() string { return a.schemaName }

// DatabaseName returns the database the asset lives in.
func (a Asset) DatabaseName() string { return a.databaseName }

// ServiceID returns the owning service id, or empty if unassigned.
func (a Asset) ServiceID() string { return a.serviceID }

// Owner returns the accountable owner.
func (a Asset) Owner() Owner { return a.owner }

// Tags returns a copy of the asset tags.
func (a Asset) Tags() []string { return copyStrings(a.tags) }

// BusinessDefinition returns the business glossary definition.
func (a Asset) BusinessDefinition() string { return a.businessDefinition }

// DocLinks returns a copy of the documentation links.
func (a Asset) DocLinks() []DocLink { return copyLinks(a.docLinks) }

// Sensitivity returns the sensitivity level.
func (a Asset) Sensitivity() Sensitivity { return a.sensitivity }

// RequiresPermission reports whether a grant is needed to see the asset unmasked.
func (a Asset) RequiresPermission() bool { return a.requiresPermission }

// CreatedAt returns the creation time.
func (a Asset) CreatedAt() time.Time { return a.createdAt }

// UpdatedAt returns the last modification time.
func (a Asset) UpdatedAt() time.Time { return a.updatedAt }

// WithDescription returns a copy with the description set.
func (a Asset) WithDescription(description string) Asset {
	a.description = description
	return a
}

// WithService returns a copy assigned to the given service.
func (a Asset) WithService(serviceID string) Asset {
	a.serviceID = serviceID
	return a
}

// WithOwner returns a copy with the owner set.
func (a Asset) WithOwner(owner Owner) Asset {
	a.owner = owner
	return a
}

// WithTags returns a copy with the tags replaced.
func (a Asset) WithTags(tags []string) Asset {
	a.tags = copyStrings(tags)
	return a
}

// WithBusinessDefinition returns a copy with the business definition set.
func (a Asset) WithBusinessDefinition(definition string) Asset {
	a.businessDefinition = definition
	return a
}

// WithDocLinks returns a copy with the documentation links replaced.
func (a Asset) WithDocLinks(links []DocLink) Asset {
	a.docLinks = copyLinks(links)
	return a
}

// WithCreatedAt returns a copy with both timestamps set to t.
func (a Asset) WithCreatedAt(t time.Time) Asset {
	a.createdAt = t
	a.updatedAt = t
	return a
}

// Redacted returns a copy with identifying fields replaced. The name is
// always replaced; free-text fields are blanked only when freeText is set.
func (a Asset) Redacted(freeText bool) Asset {
	a.name = RedactedName
	if freeText {
		a.description = ""
		a.businessDefinition = ""
	}
	return a
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyLinks(in []DocLink) []DocLink {
	out := make([]DocLink, len(in))
	copy(out, in)
	return out
}

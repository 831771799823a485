package access

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrAlreadyRevoked indicates a grant that was revoked before.
var ErrAlreadyRevoked = errors.New("permission already revoked")

// ErrInvalidLevel indicates an unknown permission level.
var ErrInvalidLevel = errors.New("invalid permission level")

// Level is the kind of access a grant confers.
type Level string

// Level values.
const (
	LevelViewer    Level = "viewer"
	LevelEditor    Level = "editor"
	LevelDeveloper Level = "developer"
	LevelOwner     Level = "owner"
)

// ParseLevel validates a permission level string.
func ParseLevel(s string) (Level, error) {
	switch v := Level(s); v {
	case LevelViewer, LevelEditor, LevelDeveloper, LevelOwner:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}

// Grant is an AssetPermission: a principal's right to see an asset unmasked.
// A zero expiry means the grant never expires; a zero revocation time means
// it was never revoked.
type Grant struct {
	id        string
	assetID   string
	holder    Principal
	level     Level
	grantedBy Principal
	grantedAt time.Time
	expiresAt time.Time
	revokedAt time.Time
	revokedBy string
}

// NewGrant creates a grant that has not been persisted.
func NewGrant(assetID string, holder Principal, level Level, grantedBy Principal, grantedAt, expiresAt time.Time) Grant {
	return Grant{
		id:        uuid.NewString(),
		assetID:   assetID,
		holder:    holder,
		level:     level,
		grantedBy: grantedBy,
		grantedAt: grantedAt,
		expiresAt: expiresAt,
	}
}

// ReconstructGrant recreates a grant from persistence.
func ReconstructGrant(
	id, assetID string,
	holder Principal,
	level Level,
	grantedBy Principal,
	grantedAt, expiresAt, revokedAt time.Time,
	revokedBy string,
) Grant {
	return Grant{
		id:        id,
		assetID:   assetID,
		holder:    holder,
		level:     level,
		grantedBy: grantedBy,
		grantedAt: grantedAt,
		expiresAt: expiresAt,
		revokedAt: revokedAt,
		revokedBy: revokedBy,
	}
}

// ID returns the grant id.
func (g Grant) ID() string { return g.id }

// AssetID returns the asset the grant applies to.
func (g Grant) AssetID() string { return g.assetID }

// Holder returns the principal holding the grant.
func (g Grant) Holder() Principal { return g.holder }

// Level returns the granted permission level.
func (g Grant) Level() Level { return g.level }

// GrantedBy returns the principal who issued the grant.
func (g Grant) GrantedBy() Principal { return g.grantedBy }

// GrantedAt returns when the grant was issued.
func (g Grant) GrantedAt() time.Time { return g.grantedAt }

// ExpiresAt returns the expiry, or the zero time if the grant is permanent.
func (g Grant) ExpiresAt() time.Time { return g.expiresAt }

// RevokedAt returns the revocation time, or the zero time.
func (g Grant) RevokedAt() time.Time { return g.revokedAt }

// RevokedBy returns the id of the principal who revoked the grant.
func (g Grant) RevokedBy() string { return g.revokedBy }

// IsActive reports whether the grant is neither revoked nor expired at now.
func (g Grant) IsActive(now time.Time) bool {
	if !g.revokedAt.IsZero() {
		return false
	}
	return g.expiresAt.IsZero() || g.expiresAt.After(now)
}

// Covers reports whether this grant gives principal unmasked access to assetID at now.
func (g Grant) Covers(assetID string, principal Principal, now time.Time) bool {
	return principal.Known() &&
		g.assetID == assetID &&
		g.holder.ID() == principal.ID() &&
		g.IsActive(now)
}

// Revoke returns a revoked copy of the grant.
func (g Grant) Revoke(by Principal, at time.Time) (Grant, error) {
	if !g.revokedAt.IsZero() {
		return g, ErrAlreadyRevoked
	}
	g.revokedAt = at
	g.revokedBy = by.ID()
	return g, nil
}

// Package access provides the permission model: who is asking, which grants
// they hold, how grants are requested, and what an asset looks like to them.
package access

import "context"

// Principal identifies the caller of an operation. The zero value is the
// anonymous principal, which holds no grants.
type Principal struct {
	id    string
	name  string
	email string
}

// NewPrincipal creates a Principal.
func NewPrincipal(id, name, email string) Principal {
	return Principal{id: id, name: name, email: email}
}

// Anonymous returns the principal used when the caller is unknown.
func Anonymous() Principal {
	return Principal{}
}

// ID returns the principal's user id.
func (p Principal) ID() string { return p.id }

// Name returns the principal's display name, falling back to the id.
func (p Principal) Name() string {
	if p.name == "" {
		return p.id
	}
	return p.name
}

// Email returns the principal's email address.
func (p Principal) Email() string { return p.email }

// Known reports whether the principal carries an identity.
func (p Principal) Known() bool { return p.id != "" }

type principalKey struct{}

// WithPrincipal stores the principal in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored in ctx, or the anonymous principal.
func PrincipalFrom(ctx context.Context) Principal {
	if p, ok := ctx.Value(principalKey{}).(Principal); ok {
		return p
	}
	return Anonymous()
}

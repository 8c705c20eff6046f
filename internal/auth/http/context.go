// Package http exposes the session endpoints and the authorization gate that
// protects every authenticated route.
package http

import (
	"context"

	"github.com/google/uuid"
)

// identityKey is a context key type for the resolved caller identity.
type identityKey struct{}

// WithIdentity stores the caller identity resolved by the gate.
func WithIdentity(ctx context.Context, identity uuid.UUID) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity returns the caller identity attached by the gate.
func GetIdentity(ctx context.Context) (uuid.UUID, bool) {
	identity, ok := ctx.Value(identityKey{}).(uuid.UUID)
	return identity, ok
}

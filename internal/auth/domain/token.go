// Package domain defines the session model: issued tokens, their decoded
// claims, revocation records and the tagged errors of the session subsystem.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token is a signed bearer token handed to a client after login.
type Token struct {
	Value     string
	Subject   uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Claims are the verified contents of a decoded token.
type Claims struct {
	Subject   uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ExpiredAt reports whether the claims are no longer fresh at now.
// A token is valid up to, but not including, its expiry instant.
func (c Claims) ExpiredAt(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// RevocationRecord marks a token as revoked until it would have expired anyway.
// TokenHash is the SHA-256 hex fingerprint of the exact token string.
type RevocationRecord struct {
	TokenHash string
	ExpiresAt time.Time
	RevokedAt time.Time
}

// ActiveAt reports whether the record still shadows its token at now.
func (r RevocationRecord) ActiveAt(now time.Time) bool {
	return r.ExpiresAt.After(now)
}

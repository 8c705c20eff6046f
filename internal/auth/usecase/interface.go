// Package usecase composes the hasher, token codec and revocation store into
// the session operations the rest of the service calls.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/Felobateer/ECommerce-API/internal/auth/domain"
	userDomain "github.com/Felobateer/ECommerce-API/internal/user/domain"
)

// RevocationRepository persists revoked token fingerprints. Implementations
// must read their own writes for the same fingerprint.
type RevocationRepository interface {
	// Record stores the revocation. Recording the same fingerprint twice is a no-op.
	Record(ctx context.Context, record *authDomain.RevocationRecord) error

	// IsRevoked reports whether a record for tokenHash exists with expires_at > now.
	IsRevoked(ctx context.Context, tokenHash string, now time.Time) (bool, error)

	// PurgeExpired deletes records with expires_at <= now and returns the count.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)

	// CountExpired returns how many records PurgeExpired would delete.
	CountExpired(ctx context.Context, now time.Time) (int64, error)
}

// IdentityStore is the part of the user store the login flow needs.
type IdentityStore interface {
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// SessionUseCase is the only entry point for minting and checking tokens.
type SessionUseCase interface {
	// Issue mints a token for subject with the configured TTL. It never
	// touches the revocation store.
	Issue(ctx context.Context, subject uuid.UUID) (*authDomain.Token, error)

	// Authorize returns the subject of a usable token. The signature and
	// expiry are checked before the revocation store is consulted. Fails with
	// KindTokenInvalid, KindTokenExpired, KindTokenRevoked or
	// KindStoreUnavailable; a store failure never authorizes.
	Authorize(ctx context.Context, token string) (uuid.UUID, error)

	// Revoke blacklists token until its natural expiry. Revoking an expired
	// token succeeds without a write; revoking a token that does not verify
	// fails with KindTokenInvalid. The store write is not cancelled with ctx.
	Revoke(ctx context.Context, token string) error

	// PurgeExpired deletes revocation records whose tokens have expired.
	PurgeExpired(ctx context.Context) (int64, error)

	// CountExpired reports how many records PurgeExpired would delete.
	CountExpired(ctx context.Context) (int64, error)
}

// LoginUseCase exchanges an email and password for a session token.
type LoginUseCase interface {
	// Login returns ErrInvalidCredentials for both unknown emails and wrong
	// passwords, and ErrAccountInactive for deactivated accounts.
	Login(ctx context.Context, email, password string) (*authDomain.Token, error)
}

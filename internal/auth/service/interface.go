// Package service holds the stateless building blocks of the session subsystem:
// password hashing and the signed token codec.
package service

import (
	"time"

	"github.com/google/uuid"

	authDomain "github.com/Felobateer/ECommerce-API/internal/auth/domain"
)

// CredentialHasher derives and checks one-way password hashes.
type CredentialHasher interface {
	// Hash derives a salted hash of secret in PHC string format.
	// Fails with KindHashingFailure only when entropy or memory is unavailable.
	Hash(secret string) (string, error)

	// Verify compares secret against hash in constant time. A mismatch, or a
	// hash in an unknown encoding, returns false rather than an error.
	Verify(secret, hash string) bool

	// NeedsRehash reports whether hash was produced by an older algorithm or
	// parameter set and should be replaced after a successful Verify.
	NeedsRehash(hash string) bool
}

// TokenCodec mints and verifies signed session tokens. Only the session use
// case may call it; everything else goes through SessionUseCase.
type TokenCodec interface {
	// Encode signs a token for subject that expires ttl from now.
	Encode(subject uuid.UUID, ttl time.Duration) (*authDomain.Token, error)

	// Decode verifies the signature and freshness of token. It fails with
	// KindTokenInvalid for any malformed or forged input and with
	// KindTokenExpired once now >= exp.
	Decode(token string) (*authDomain.Claims, error)
}

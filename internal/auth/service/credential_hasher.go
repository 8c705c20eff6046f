package service

import (
	"strings"

	"github.com/allisson/go-pwdhash"
	"golang.org/x/crypto/bcrypt"

	authDomain "github.com/Felobateer/ECommerce-API/internal/auth/domain"
)

// bcryptPrefixes identify hashes written by the previous account service.
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

type credentialHasher struct {
	hasher *pwdhash.PasswordHasher
	// paramsPrefix is "$argon2id$v=..$m=..,t=..,p=..$" for the active policy.
	paramsPrefix string
}

// NewCredentialHasher creates an Argon2id hasher using the Interactive policy,
// which keeps login latency low while staying memory-hard.
func NewCredentialHasher() (CredentialHasher, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, authDomain.NewError(authDomain.KindHashingFailure, err)
	}

	probe, err := hasher.Hash([]byte("parameter-probe"))
	if err != nil {
		return nil, authDomain.NewError(authDomain.KindHashingFailure, err)
	}

	return &credentialHasher{
		hasher:       hasher,
		paramsPrefix: phcParamsPrefix(probe),
	}, nil
}

func (h *credentialHasher) Hash(secret string) (string, error) {
	hashed, err := h.hasher.Hash([]byte(secret))
	if err != nil {
		return "", authDomain.NewError(authDomain.KindHashingFailure, err)
	}
	return hashed, nil
}

func (h *credentialHasher) Verify(secret, hash string) bool {
	if isBcrypt(hash) {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
	}

	ok, err := h.hasher.Verify([]byte(secret), hash)
	if err != nil {
		return false
	}
	return ok
}

func (h *credentialHasher) NeedsRehash(hash string) bool {
	if isBcrypt(hash) {
		return true
	}
	return h.paramsPrefix == "" || !strings.HasPrefix(hash, h.paramsPrefix)
}

func isBcrypt(hash string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(hash, prefix) {
			return true
		}
	}
	return false
}

// phcParamsPrefix keeps the algorithm, version and parameter fields of a PHC
// string and drops the salt and digest.
func phcParamsPrefix(hash string) string {
	parts := strings.Split(hash, "$")
	if len(parts) < 5 {
		return ""
	}
	return strings.Join(parts[:4], "$") + "$"
}

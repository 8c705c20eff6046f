package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/Felobateer/ECommerce-API/internal/auth/domain"
	apperrors "github.com/Felobateer/ECommerce-API/internal/errors"
)

// CodecOption configures the token codec.
type CodecOption func(*tokenCodec)

// WithIssuer sets the "iss" claim on issued tokens and requires it on decode.
func WithIssuer(issuer string) CodecOption {
	return func(c *tokenCodec) {
		c.issuer = issuer
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) CodecOption {
	return func(c *tokenCodec) {
		c.now = now
	}
}

// tokenCodec implements TokenCodec with HS256-signed JWTs.
type tokenCodec struct {
	key    []byte
	issuer string
	now    func() time.Time
	parser *jwt.Parser
}

// NewTokenCodec creates a codec that signs with signingKey. The key is copied.
func NewTokenCodec(signingKey []byte, opts ...CodecOption) TokenCodec {
	c := &tokenCodec{
		key: append([]byte(nil), signingKey...),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(func() time.Time { return c.now() }),
	}
	if c.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(c.issuer))
	}
	c.parser = jwt.NewParser(parserOpts...)

	return c
}

func (c *tokenCodec) Encode(subject uuid.UUID, ttl time.Duration) (*authDomain.Token, error) {
	now := c.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject.String(),
		Issuer:    c.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to sign token")
	}

	return &authDomain.Token{
		Value:     signed,
		Subject:   subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (c *tokenCodec) Decode(token string) (*authDomain.Claims, error) {
	var claims jwt.RegisteredClaims
	_, err := c.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.key, nil
	})
	if err != nil {
		// The signature is verified before any claim, so an expired error
		// here always belongs to a token this service signed.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, authDomain.NewError(authDomain.KindTokenExpired, err)
		}
		return nil, authDomain.NewError(authDomain.KindTokenInvalid, err)
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, authDomain.NewError(authDomain.KindTokenInvalid, err)
	}

	decoded := &authDomain.Claims{
		Subject:   subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		decoded.IssuedAt = claims.IssuedAt.Time
	}
	return decoded, nil
}

// Fingerprint returns the SHA-256 hex digest of a token string. Revocation
// records are keyed by it so revoked bearer strings are never stored.
func Fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

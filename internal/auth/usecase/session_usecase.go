package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/Felobateer/ECommerce-API/internal/auth/domain"
	authService "github.com/Felobateer/ECommerce-API/internal/auth/service"
)

// DefaultRevokeTimeout bounds the revocation write once it is detached from
// the request context.
const DefaultRevokeTimeout = 5 * time.Second

// SessionConfig holds the session policy. SigningSecret is copied by the codec.
type SessionConfig struct {
	SigningSecret []byte
	TokenTTL      time.Duration
	Issuer        string
	RevokeTimeout time.Duration
	// Clock replaces time.Now when set.
	Clock func() time.Time
}

type sessionUseCase struct {
	codec         authService.TokenCodec
	revocations   RevocationRepository
	ttl           time.Duration
	revokeTimeout time.Duration
	now           func() time.Time
}

// NewSessionUseCase creates the session authority. It owns the token codec so
// no other component can sign or parse tokens.
func NewSessionUseCase(cfg SessionConfig, revocations RevocationRepository) SessionUseCase {
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	revokeTimeout := cfg.RevokeTimeout
	if revokeTimeout <= 0 {
		revokeTimeout = DefaultRevokeTimeout
	}

	opts := []authService.CodecOption{authService.WithClock(now)}
	if cfg.Issuer != "" {
		opts = append(opts, authService.WithIssuer(cfg.Issuer))
	}

	return &sessionUseCase{
		codec:         authService.NewTokenCodec(cfg.SigningSecret, opts...),
		revocations:   revocations,
		ttl:           cfg.TokenTTL,
		revokeTimeout: revokeTimeout,
		now:           now,
	}
}

func (s *sessionUseCase) Issue(ctx context.Context, subject uuid.UUID) (*authDomain.Token, error) {
	return s.codec.Encode(subject, s.ttl)
}

func (s *sessionUseCase) Authorize(ctx context.Context, token string) (uuid.UUID, error) {
	claims, err := s.codec.Decode(token)
	if err != nil {
		return uuid.Nil, err
	}

	revoked, err := s.revocations.IsRevoked(ctx, authService.Fingerprint(token), s.now())
	if err != nil {
		return uuid.Nil, authDomain.NewError(authDomain.KindStoreUnavailable, err)
	}
	if revoked {
		return uuid.Nil, authDomain.NewError(authDomain.KindTokenRevoked, nil)
	}

	return claims.Subject, nil
}

func (s *sessionUseCase) Revoke(ctx context.Context, token string) error {
	claims, err := s.codec.Decode(token)
	if err != nil {
		if errors.Is(err, authDomain.ErrTokenExpired) {
			return nil
		}
		return err
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.revokeTimeout)
	defer cancel()

	record := &authDomain.RevocationRecord{
		TokenHash: authService.Fingerprint(token),
		ExpiresAt: claims.ExpiresAt,
		RevokedAt: s.now().UTC(),
	}
	if err := s.revocations.Record(ctx, record); err != nil {
		return authDomain.NewError(authDomain.KindStoreUnavailable, err)
	}
	return nil
}

func (s *sessionUseCase) PurgeExpired(ctx context.Context) (int64, error) {
	count, err := s.revocations.PurgeExpired(ctx, s.now())
	if err != nil {
		return 0, authDomain.NewError(authDomain.KindStoreUnavailable, err)
	}
	return count, nil
}

func (s *sessionUseCase) CountExpired(ctx context.Context) (int64, error) {
	count, err := s.revocations.CountExpired(ctx, s.now())
	if err != nil {
		return 0, authDomain.NewError(authDomain.KindStoreUnavailable, err)
	}
	return count, nil
}

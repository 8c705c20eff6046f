// Package redis keeps revoked session tokens in Redis. Each revocation is a key
// that expires together with its token, so no explicit purge is needed.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	authDomain "github.com/Felobateer/ECommerce-API/internal/auth/domain"
	apperrors "github.com/Felobateer/ECommerce-API/internal/errors"
)

const keyPrefix = "revoked_token:"

// RedisRevocationRepository stores revocations as "revoked_token:<fingerprint>"
// keys holding the token expiry in unix milliseconds.
type RedisRevocationRepository struct {
	client redis.Cmdable
}

func key(tokenHash string) string {
	return keyPrefix + tokenHash
}

// Record sets the revocation key with a TTL that ends at the token expiry.
// A record that is already dead at RevokedAt is not written.
func (r *RedisRevocationRepository) Record(ctx context.Context, record *authDomain.RevocationRecord) error {
	ttl := record.ExpiresAt.Sub(record.RevokedAt)
	if ttl <= 0 {
		return nil
	}

	err := r.client.Set(ctx, key(record.TokenHash), record.ExpiresAt.UnixMilli(), ttl).Err()
	if err != nil {
		return apperrors.Wrap(err, "failed to record revoked token")
	}
	return nil
}

// IsRevoked compares the stored expiry against now instead of trusting the key
// TTL alone, so the answer matches the SQL stores for any supplied instant.
func (r *RedisRevocationRepository) IsRevoked(ctx context.Context, tokenHash string, now time.Time) (bool, error) {
	expiresAt, err := r.client.Get(ctx, key(tokenHash)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, apperrors.Wrap(err, "failed to check revoked token")
	}
	return time.UnixMilli(expiresAt).After(now), nil
}

// PurgeExpired is a no-op: Redis evicts revocation keys when their TTL ends.
func (r *RedisRevocationRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

// CountExpired always reports zero for the same reason.
func (r *RedisRevocationRepository) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

// NewRedisRevocationRepository creates a revocation repository on client.
func NewRedisRevocationRepository(client redis.Cmdable) *RedisRevocationRepository {
	return &RedisRevocationRepository{client: client}
}

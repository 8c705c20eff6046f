package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/Felobateer/ECommerce-API/internal/auth/domain"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *RedisRevocationRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisRevocationRepository(client)
}

func TestRedisRevocationRepository_RecordAndIsRevoked(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mr, repo := setupRedis(t)

	record := &authDomain.RevocationRecord{
		TokenHash: "9b2d",
		ExpiresAt: now.Add(time.Hour),
		RevokedAt: now,
	}
	require.NoError(t, repo.Record(ctx, record))

	t.Run("Success_KeyExpiresWithToken", func(t *testing.T) {
		assert.True(t, mr.Exists("revoked_token:9b2d"))
		assert.Equal(t, time.Hour, mr.TTL("revoked_token:9b2d"))
	})

	t.Run("Success_RevokedBeforeExpiry", func(t *testing.T) {
		revoked, err := repo.IsRevoked(ctx, "9b2d", now.Add(time.Minute))
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("Success_NotRevokedAtExpiry", func(t *testing.T) {
		revoked, err := repo.IsRevoked(ctx, "9b2d", now.Add(time.Hour))
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("Success_UnknownToken", func(t *testing.T) {
		revoked, err := repo.IsRevoked(ctx, "unknown", now)
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("Success_RecordIsIdempotent", func(t *testing.T) {
		require.NoError(t, repo.Record(ctx, record))
		revoked, err := repo.IsRevoked(ctx, "9b2d", now.Add(time.Minute))
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("Success_KeyEvictedAfterTTL", func(t *testing.T) {
		mr.FastForward(time.Hour + time.Second)
		assert.False(t, mr.Exists("revoked_token:9b2d"))
	})
}

func TestRedisRevocationRepository_RecordAlreadyExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mr, repo := setupRedis(t)

	err := repo.Record(ctx, &authDomain.RevocationRecord{
		TokenHash: "stale",
		ExpiresAt: now,
		RevokedAt: now,
	})

	require.NoError(t, err)
	assert.False(t, mr.Exists("revoked_token:stale"))
}

func TestRedisRevocationRepository_PurgeIsNoOp(t *testing.T) {
	ctx := context.Background()
	_, repo := setupRedis(t)

	purged, err := repo.PurgeExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Zero(t, purged)

	count, err := repo.CountExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRedisRevocationRepository_ServerDown(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mr, repo := setupRedis(t)
	mr.Close()

	revoked, err := repo.IsRevoked(ctx, "9b2d", now)
	assert.Error(t, err)
	assert.False(t, revoked)

	err = repo.Record(ctx, &authDomain.RevocationRecord{
		TokenHash: "9b2d",
		ExpiresAt: now.Add(time.Hour),
		RevokedAt: now,
	})
	assert.Error(t, err)
}

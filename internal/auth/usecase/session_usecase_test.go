package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/Felobateer/ECommerce-API/internal/auth/domain"
	"github.com/Felobateer/ECommerce-API/internal/auth/usecase/mocks"
	apperrors "github.com/Felobateer/ECommerce-API/internal/errors"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// memoryRevocations mirrors the SQL stores: a record shadows its token while
// expires_at > now.
type memoryRevocations struct {
	mu      sync.Mutex
	records map[string]authDomain.RevocationRecord
	writes  int
}

func newMemoryRevocations() *memoryRevocations {
	return &memoryRevocations{records: make(map[string]authDomain.RevocationRecord)}
}

func (m *memoryRevocations) Record(_ context.Context, record *authDomain.RevocationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if _, ok := m.records[record.TokenHash]; !ok {
		m.records[record.TokenHash] = *record
	}
	return nil
}

func (m *memoryRevocations) IsRevoked(_ context.Context, tokenHash string, now time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[tokenHash]
	return ok && record.ActiveAt(now), nil
}

func (m *memoryRevocations) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for key, record := range m.records {
		if !record.ActiveAt(now) {
			delete(m.records, key)
			count++
		}
	}
	return count, nil
}

func (m *memoryRevocations) CountExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, record := range m.records {
		if !record.ActiveAt(now) {
			count++
		}
	}
	return count, nil
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestSessions(store RevocationRepository) (SessionUseCase, *testClock) {
	clock := &testClock{now: t0}
	sessions := NewSessionUseCase(SessionConfig{
		SigningSecret: testSecret,
		TokenTTL:      time.Hour,
		Issuer:        "ecommerce-api",
		Clock:         clock.Now,
	}, store)
	return sessions, clock
}

func TestSessionUseCase_ConcreteScenario(t *testing.T) {
	ctx := context.Background()
	store := newMemoryRevocations()
	sessions, clock := newTestSessions(store)
	u1 := uuid.Must(uuid.NewV7())

	first, err := sessions.Issue(ctx, u1)
	require.NoError(t, err)
	assert.Equal(t, t0.Add(time.Hour), first.ExpiresAt)

	clock.Set(t0.Add(time.Second))
	subject, err := sessions.Authorize(ctx, first.Value)
	require.NoError(t, err)
	assert.Equal(t, u1, subject)

	clock.Set(t0.Add(3601 * time.Second))
	_, err = sessions.Authorize(ctx, first.Value)
	assert.ErrorIs(t, err, authDomain.ErrTokenExpired)

	clock.Set(t0)
	second, err := sessions.Issue(ctx, u1)
	require.NoError(t, err)
	require.NoError(t, sessions.Revoke(ctx, second.Value))

	clock.Set(t0.Add(time.Second))
	_, err = sessions.Authorize(ctx, second.Value)
	assert.ErrorIs(t, err, authDomain.ErrTokenRevoked)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestSessionUseCase_ExpiryBoundary(t *testing.T) {
	ctx := context.Background()
	sessions, clock := newTestSessions(newMemoryRevocations())
	subject := uuid.Must(uuid.NewV7())

	token, err := sessions.Issue(ctx, subject)
	require.NoError(t, err)

	clock.Set(t0.Add(time.Hour - time.Second))
	got, err := sessions.Authorize(ctx, token.Value)
	require.NoError(t, err)
	assert.Equal(t, subject, got)

	clock.Set(t0.Add(time.Hour))
	_, err = sessions.Authorize(ctx, token.Value)
	assert.ErrorIs(t, err, authDomain.ErrTokenExpired)
}

func TestSessionUseCase_RevokedTokenBecomesExpired(t *testing.T) {
	ctx := context.Background()
	sessions, clock := newTestSessions(newMemoryRevocations())

	token, err := sessions.Issue(ctx, uuid.Must(uuid.NewV7()))
	require.NoError(t, err)
	require.NoError(t, sessions.Revoke(ctx, token.Value))

	clock.Set(t0.Add(time.Hour - time.Second))
	_, err = sessions.Authorize(ctx, token.Value)
	assert.ErrorIs(t, err, authDomain.ErrTokenRevoked)

	clock.Set(t0.Add(time.Hour))
	_, err = sessions.Authorize(ctx, token.Value)
	assert.ErrorIs(t, err, authDomain.ErrTokenExpired)
}

func TestSessionUseCase_RevokeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newMemoryRevocations()
	sessions, _ := newTestSessions(store)

	token, err := sessions.Issue(ctx, uuid.Must(uuid.NewV7()))
	require.NoError(t, err)

	require.NoError(t, sessions.Revoke(ctx, token.Value))
	require.NoError(t, sessions.Revoke(ctx, token.Value))

	_, err = sessions.Authorize(ctx, token.Value)
	assert.ErrorIs(t, err, authDomain.ErrTokenRevoked)
	assert.Len(t, store.records, 1)
}

func TestSessionUseCase_RevokeExpiredTokenIsNoop(t *testing.T) {
	ctx := context.Background()
	store := newMemoryRevocations()
	sessions, clock := newTestSessions(store)

	token, err := sessions.Issue(ctx, uuid.Must(uuid.NewV7()))
	require.NoError(t, err)

	clock.Set(t0.Add(2 * time.Hour))
	assert.NoError(t, sessions.Revoke(ctx, token.Value))
	assert.Zero(t, store.writes)
}

func TestSessionUseCase_RevokeInvalidToken(t *testing.T) {
	ctx := context.Background()
	store := newMemoryRevocations()
	sessions, _ := newTestSessions(store)

	err := sessions.Revoke(ctx, "not.a.token")

	assert.ErrorIs(t, err, authDomain.ErrTokenInvalid)
	assert.Zero(t, store.writes)
}

func TestSessionUseCase_RevokeSurvivesCancelledContext(t *testing.T) {
	store := newMemoryRevocations()
	sessions, _ := newTestSessions(store)

	token, err := sessions.Issue(context.Background(), uuid.Must(uuid.NewV7()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := &mocks.MockRevocationRepository{}
	repo.On("Record", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), mock.Anything).Return(nil)

	detached, _ := newTestSessions(repo)
	require.NoError(t, detached.Revoke(ctx, token.Value))
	repo.AssertExpectations(t)
}

func TestSessionUseCase_TamperedTokenIsInvalid(t *testing.T) {
	ctx := context.Background()
	sessions, _ := newTestSessions(newMemoryRevocations())

	token, err := sessions.Issue(ctx, uuid.Must(uuid.NewV7()))
	require.NoError(t, err)

	for i, ch := range token.Value {
		if ch == '.' {
			continue
		}
		replacement := "A"
		if ch == 'A' {
			replacement = "B"
		}
		tampered := token.Value[:i] + replacement + token.Value[i+1:]

		_, err := sessions.Authorize(ctx, tampered)
		require.ErrorIs(t, err, authDomain.ErrTokenInvalid, "position %d", i)
	}
}

func TestSessionUseCase_StoreUnavailableFailsClosed(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.MockRevocationRepository{}
	repo.On("IsRevoked", ctx, mock.Anything, mock.Anything).Return(false, errors.New("connection refused"))
	sessions, _ := newTestSessions(repo)

	token, err := sessions.Issue(ctx, uuid.Must(uuid.NewV7()))
	require.NoError(t, err)

	subject, err := sessions.Authorize(ctx, token.Value)

	assert.Equal(t, uuid.Nil, subject)
	assert.ErrorIs(t, err, authDomain.ErrStoreUnavailable)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
}

func TestSessionUseCase_InvalidTokenSkipsStore(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.MockRevocationRepository{}
	sessions, _ := newTestSessions(repo)

	_, err := sessions.Authorize(ctx, strings.Repeat("x", 40))

	assert.ErrorIs(t, err, authDomain.ErrTokenInvalid)
	repo.AssertNotCalled(t, "IsRevoked", mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionUseCase_PurgeExpired(t *testing.T) {
	ctx := context.Background()
	store := newMemoryRevocations()
	sessions, clock := newTestSessions(store)

	token, err := sessions.Issue(ctx, uuid.Must(uuid.NewV7()))
	require.NoError(t, err)
	require.NoError(t, sessions.Revoke(ctx, token.Value))

	count, err := sessions.CountExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	clock.Set(t0.Add(time.Hour))
	count, err = sessions.CountExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	purged, err := sessions.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
	assert.Empty(t, store.records)
}

func TestSessionUseCase_PurgeStoreFailure(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.MockRevocationRepository{}
	repo.On("PurgeExpired", ctx, t0).Return(int64(0), errors.New("timeout"))
	sessions, _ := newTestSessions(repo)

	_, err := sessions.PurgeExpired(ctx)

	assert.ErrorIs(t, err, authDomain.ErrStoreUnavailable)
}

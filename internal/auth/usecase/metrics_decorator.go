package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/Felobateer/ECommerce-API/internal/auth/domain"
	"github.com/Felobateer/ECommerce-API/internal/metrics"
)

// statusOf labels an outcome with its error kind so rejections and store
// outages are counted separately.
func statusOf(err error) string {
	if err == nil {
		return "success"
	}
	if kind, ok := authDomain.KindOf(err); ok {
		return string(kind)
	}
	return "error"
}

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *sessionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := statusOf(err)
	s.metrics.RecordOperation(ctx, "auth", operation, status)
	s.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
}

// Issue records metrics for token issuance.
func (s *sessionUseCaseWithMetrics) Issue(ctx context.Context, subject uuid.UUID) (*authDomain.Token, error) {
	start := time.Now()
	token, err := s.next.Issue(ctx, subject)
	s.record(ctx, "session_issue", start, err)
	return token, err
}

// Authorize records metrics for token checks.
func (s *sessionUseCaseWithMetrics) Authorize(ctx context.Context, token string) (uuid.UUID, error) {
	start := time.Now()
	subject, err := s.next.Authorize(ctx, token)
	s.record(ctx, "session_authorize", start, err)
	return subject, err
}

// Revoke records metrics for token revocation.
func (s *sessionUseCaseWithMetrics) Revoke(ctx context.Context, token string) error {
	start := time.Now()
	err := s.next.Revoke(ctx, token)
	s.record(ctx, "session_revoke", start, err)
	return err
}

// PurgeExpired records metrics for revocation purges.
func (s *sessionUseCaseWithMetrics) PurgeExpired(ctx context.Context) (int64, error) {
	start := time.Now()
	count, err := s.next.PurgeExpired(ctx)
	s.record(ctx, "revocation_purge", start, err)
	return count, err
}

// CountExpired is not instrumented; it only backs the purge dry run.
func (s *sessionUseCaseWithMetrics) CountExpired(ctx context.Context) (int64, error) {
	return s.next.CountExpired(ctx)
}

// loginUseCaseWithMetrics decorates LoginUseCase with metrics instrumentation.
type loginUseCaseWithMetrics struct {
	next    LoginUseCase
	metrics metrics.BusinessMetrics
}

// NewLoginUseCaseWithMetrics wraps a LoginUseCase with metrics recording.
func NewLoginUseCaseWithMetrics(useCase LoginUseCase, m metrics.BusinessMetrics) LoginUseCase {
	return &loginUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Login records metrics for login attempts.
func (l *loginUseCaseWithMetrics) Login(ctx context.Context, email, password string) (*authDomain.Token, error) {
	start := time.Now()
	token, err := l.next.Login(ctx, email, password)

	status := statusOf(err)
	l.metrics.RecordOperation(ctx, "auth", "login", status)
	l.metrics.RecordDuration(ctx, "auth", "login", time.Since(start), status)

	return token, err
}

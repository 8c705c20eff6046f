package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Felobateer/ECommerce-API/internal/metrics"
	"github.com/Felobateer/ECommerce-API/internal/user/domain"
)

// userUseCaseWithMetrics decorates UserUseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UserUseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UserUseCase, m metrics.BusinessMetrics) UserUseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "users", operation, status)
	u.metrics.RecordDuration(ctx, "users", operation, time.Since(start), status)
}

// Register records metrics for account registration.
func (u *userUseCaseWithMetrics) Register(
	ctx context.Context,
	input *domain.RegisterUserInput,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Register(ctx, input)
	u.record(ctx, "user_register", start, err)
	return user, err
}

// Get records metrics for account retrieval.
func (u *userUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Get(ctx, id)
	u.record(ctx, "user_get", start, err)
	return user, err
}

// Update records metrics for profile updates.
func (u *userUseCaseWithMetrics) Update(
	ctx context.Context,
	id uuid.UUID,
	input *domain.UpdateUserInput,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Update(ctx, id, input)
	u.record(ctx, "user_update", start, err)
	return user, err
}

// Deactivate records metrics for account deactivation.
func (u *userUseCaseWithMetrics) Deactivate(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := u.next.Deactivate(ctx, id)
	u.record(ctx, "user_deactivate", start, err)
	return err
}

package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Felobateer/ECommerce-API/internal/cart/domain"
	"github.com/Felobateer/ECommerce-API/internal/cart/usecase/mocks"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func TestCartUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV7())

	t.Run("AddItem error", func(t *testing.T) {
		next := &mocks.MockCartUseCase{}
		m := &mockBusinessMetrics{}
		input := &domain.AddItemInput{Quantity: 0}
		next.On("AddItem", ctx, userID, input).Return(nil, domain.ErrInvalidQuantity).Once()
		m.On("RecordOperation", ctx, "carts", "cart_add_item", "error").Return().Once()
		m.On("RecordDuration", ctx, "carts", "cart_add_item", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		_, err := NewCartUseCaseWithMetrics(next, m).AddItem(ctx, userID, input)

		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
		m.AssertExpectations(t)
	})

	t.Run("Clear success", func(t *testing.T) {
		next := &mocks.MockCartUseCase{}
		m := &mockBusinessMetrics{}
		next.On("Clear", ctx, userID).Return(nil).Once()
		m.On("RecordOperation", ctx, "carts", "cart_clear", "success").Return().Once()
		m.On("RecordDuration", ctx, "carts", "cart_clear", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		assert.NoError(t, NewCartUseCaseWithMetrics(next, m).Clear(ctx, userID))
		m.AssertExpectations(t)
	})
}

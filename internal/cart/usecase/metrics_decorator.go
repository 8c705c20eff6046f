package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Felobateer/ECommerce-API/internal/cart/domain"
	"github.com/Felobateer/ECommerce-API/internal/metrics"
)

// cartUseCaseWithMetrics decorates CartUseCase with metrics instrumentation.
type cartUseCaseWithMetrics struct {
	next    CartUseCase
	metrics metrics.BusinessMetrics
}

// NewCartUseCaseWithMetrics wraps a CartUseCase with metrics recording.
func NewCartUseCaseWithMetrics(useCase CartUseCase, m metrics.BusinessMetrics) CartUseCase {
	return &cartUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *cartUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "carts", operation, status)
	c.metrics.RecordDuration(ctx, "carts", operation, time.Since(start), status)
}

// Get records metrics for cart retrieval.
func (c *cartUseCaseWithMetrics) Get(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	start := time.Now()
	cart, err := c.next.Get(ctx, userID)
	c.record(ctx, "cart_get", start, err)
	return cart, err
}

// AddItem records metrics for item additions.
func (c *cartUseCaseWithMetrics) AddItem(
	ctx context.Context,
	userID uuid.UUID,
	input *domain.AddItemInput,
) (*domain.CartItem, error) {
	start := time.Now()
	item, err := c.next.AddItem(ctx, userID, input)
	c.record(ctx, "cart_add_item", start, err)
	return item, err
}

// RemoveItem records metrics for item removals.
func (c *cartUseCaseWithMetrics) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	start := time.Now()
	err := c.next.RemoveItem(ctx, userID, itemID)
	c.record(ctx, "cart_remove_item", start, err)
	return err
}

// Clear records metrics for emptying a cart.
func (c *cartUseCaseWithMetrics) Clear(ctx context.Context, userID uuid.UUID) error {
	start := time.Now()
	err := c.next.Clear(ctx, userID)
	c.record(ctx, "cart_clear", start, err)
	return err
}

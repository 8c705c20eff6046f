// Package usecase implements cart operations for the authenticated caller.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/Felobateer/ECommerce-API/internal/cart/domain"
)

// CartItemRepository defines persistence operations for cart items. Every
// query is scoped to the owning user.
type CartItemRepository interface {
	// Create stores a new item.
	Create(ctx context.Context, item *domain.CartItem) error

	// ListByUser returns the user's items, oldest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CartItem, error)

	// Delete removes one item owned by userID. Returns ErrCartItemNotFound
	// when no such item belongs to the user.
	Delete(ctx context.Context, userID, itemID uuid.UUID) error

	// DeleteByUser removes every item owned by userID and returns the count.
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// CartUseCase defines cart operations. The owner is always the identity
// resolved from the caller's token.
type CartUseCase interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.Cart, error)
	AddItem(ctx context.Context, userID uuid.UUID, input *domain.AddItemInput) (*domain.CartItem, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

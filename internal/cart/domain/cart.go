// Package domain defines shopping cart items and their errors.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/Felobateer/ECommerce-API/internal/errors"
)

// CartItem is one product line in a user's cart.
type CartItem struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	CreatedAt time.Time
}

// Cart is the full set of items owned by one user.
type Cart struct {
	UserID uuid.UUID
	Items  []*CartItem
}

// TotalQuantity sums the quantity of every item.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// AddItemInput contains the data needed to add a product to a cart.
type AddItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// Domain-specific errors for cart operations.
var (
	// ErrCartItemNotFound indicates the item does not exist in the caller's cart.
	ErrCartItemNotFound = errors.Wrap(errors.ErrNotFound, "cart item not found")

	// ErrInvalidQuantity indicates a quantity below one.
	ErrInvalidQuantity = errors.Wrap(errors.ErrInvalidInput, "quantity must be at least 1")
)

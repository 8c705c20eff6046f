package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Felobateer/ECommerce-API/internal/cart/domain"
)

// CartItemResponse is the external view of a cart item.
type CartItemResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// CartResponse is the body of GET /v1/cart.
type CartResponse struct {
	UserID        uuid.UUID          `json:"user_id"`
	Items         []CartItemResponse `json:"items"`
	TotalQuantity int                `json:"total_quantity"`
}

// MapCartItemToResponse converts a cart item to its response body.
func MapCartItemToResponse(item *domain.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
	}
}

// MapCartToResponse converts a cart to its response body.
func MapCartToResponse(cart *domain.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, MapCartItemToResponse(item))
	}
	return CartResponse{
		UserID:        cart.UserID,
		Items:         items,
		TotalQuantity: cart.TotalQuantity(),
	}
}

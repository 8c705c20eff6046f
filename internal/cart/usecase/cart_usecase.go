package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Felobateer/ECommerce-API/internal/cart/domain"
)

type cartUseCase struct {
	itemRepo CartItemRepository
	now      func() time.Time
}

// NewCartUseCase creates a new CartUseCase.
func NewCartUseCase(itemRepo CartItemRepository) CartUseCase {
	return &cartUseCase{
		itemRepo: itemRepo,
		now:      time.Now,
	}
}

func (c *cartUseCase) Get(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	items, err := c.itemRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.Cart{UserID: userID, Items: items}, nil
}

func (c *cartUseCase) AddItem(
	ctx context.Context,
	userID uuid.UUID,
	input *domain.AddItemInput,
) (*domain.CartItem, error) {
	if input.Quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	item := &domain.CartItem{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    userID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		CreatedAt: c.now().UTC(),
	}
	if err := c.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (c *cartUseCase) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	return c.itemRepo.Delete(ctx, userID, itemID)
}

func (c *cartUseCase) Clear(ctx context.Context, userID uuid.UUID) error {
	_, err := c.itemRepo.DeleteByUser(ctx, userID)
	return err
}

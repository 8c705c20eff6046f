package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/Felobateer/ECommerce-API/internal/errors"
)

func TestCart_TotalQuantity(t *testing.T) {
	assert.Equal(t, 0, (&Cart{}).TotalQuantity())

	cart := &Cart{Items: []*CartItem{{Quantity: 2}, {Quantity: 3}}}
	assert.Equal(t, 5, cart.TotalQuantity())
}

func TestCartErrors(t *testing.T) {
	assert.ErrorIs(t, ErrCartItemNotFound, apperrors.ErrNotFound)
	assert.ErrorIs(t, ErrInvalidQuantity, apperrors.ErrInvalidInput)
}

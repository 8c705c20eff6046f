package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/Felobateer/ECommerce-API/internal/errors"
)

func TestAddItemRequest_Validate(t *testing.T) {
	productID := uuid.Must(uuid.NewV7()).String()

	tests := []struct {
		name    string
		request AddItemRequest
		wantErr bool
	}{
		{"valid", AddItemRequest{ProductID: productID, Quantity: 2}, false},
		{"missing product", AddItemRequest{Quantity: 2}, true},
		{"bad product id", AddItemRequest{ProductID: "sku-123", Quantity: 2}, true},
		{"zero quantity", AddItemRequest{ProductID: productID}, true},
		{"negative quantity", AddItemRequest{ProductID: productID, Quantity: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 2, tt.request.ToInput().Quantity)
		})
	}
}

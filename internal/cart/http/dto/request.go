// Package dto provides request and response bodies for the cart endpoints.
package dto

import (
	validation "github.com/jellydator/validation"
	"github.com/jellydator/validation/is"

	"github.com/google/uuid"

	"github.com/Felobateer/ECommerce-API/internal/cart/domain"
	appValidation "github.com/Felobateer/ECommerce-API/internal/validation"
)

// AddItemRequest is the body of POST /v1/cart/items.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Validate checks the product id format and a positive quantity.
func (r *AddItemRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.ProductID, validation.Required, is.UUID),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1), validation.Max(1000)),
	)
	return appValidation.WrapValidationError(err)
}

// ToInput converts the request to use case input. Call Validate first.
func (r *AddItemRequest) ToInput() *domain.AddItemInput {
	return &domain.AddItemInput{
		ProductID: uuid.MustParse(r.ProductID),
		Quantity:  r.Quantity,
	}
}

// Package dto provides request and response bodies for the session endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/Felobateer/ECommerce-API/internal/validation"
)

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // request field, never logged
}

// Validate checks that both credentials are present.
func (r *LoginRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Email,
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(1, 128),
		),
	)
	return customValidation.WrapValidationError(err)
}

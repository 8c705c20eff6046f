// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/Felobateer/ECommerce-API/internal/user/domain"
	appValidation "github.com/Felobateer/ECommerce-API/internal/validation"
)

// RegisterUserRequest is the body of POST /v1/users.
type RegisterUserRequest struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	Password    string  `json:"password"` //nolint:gosec // request field, never logged
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// Validate checks required fields, email format and password strength.
func (r *RegisterUserRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.FirstName,
			validation.Required.Error("first name is required"),
			appValidation.NotBlank,
			validation.Length(1, 100),
		),
		validation.Field(&r.LastName,
			validation.Required.Error("last name is required"),
			appValidation.NotBlank,
			validation.Length(1, 100),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			appValidation.Email,
			validation.Length(5, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:      8,
				RequireUpper:   true,
				RequireLower:   true,
				RequireNumber:  true,
				RequireSpecial: true,
			},
		),
		validation.Field(&r.PhoneNumber, validation.NilOrNotEmpty, appValidation.Phone),
	)
	return appValidation.WrapValidationError(err)
}

// ToInput converts the request to use case input.
func (r *RegisterUserRequest) ToInput() *domain.RegisterUserInput {
	return &domain.RegisterUserInput{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Password:    r.Password,
		PhoneNumber: r.PhoneNumber,
	}
}

// UpdateUserRequest is the body of PATCH /v1/users/:id. Omitted fields are
// left unchanged.
type UpdateUserRequest struct {
	FirstName        *string `json:"first_name,omitempty"`
	LastName         *string `json:"last_name,omitempty"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	SecondaryEmail   *string `json:"secondary_email,omitempty"`
	MailingAddress   *string `json:"mailing_address,omitempty"`
	SecondaryAddress *string `json:"secondary_address,omitempty"`
}

// Validate checks the format of every provided field.
func (r *UpdateUserRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.FirstName, validation.NilOrNotEmpty, appValidation.NotBlank, validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.NilOrNotEmpty, appValidation.NotBlank, validation.Length(1, 100)),
		validation.Field(&r.PhoneNumber, validation.NilOrNotEmpty, appValidation.Phone),
		validation.Field(&r.SecondaryEmail, validation.NilOrNotEmpty, appValidation.Email),
		validation.Field(&r.MailingAddress, validation.NilOrNotEmpty, validation.Length(1, 500)),
		validation.Field(&r.SecondaryAddress, validation.NilOrNotEmpty, validation.Length(1, 500)),
	)
	return appValidation.WrapValidationError(err)
}

// ToInput converts the request to use case input.
func (r *UpdateUserRequest) ToInput() *domain.UpdateUserInput {
	return &domain.UpdateUserInput{
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		PhoneNumber:      r.PhoneNumber,
		SecondaryEmail:   r.SecondaryEmail,
		MailingAddress:   r.MailingAddress,
		SecondaryAddress: r.SecondaryAddress,
	}
}

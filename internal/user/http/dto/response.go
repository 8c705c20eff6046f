package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Felobateer/ECommerce-API/internal/user/domain"
)

// UserResponse is the external view of an account. The password hash is never exposed.
type UserResponse struct {
	ID               uuid.UUID `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	PhoneNumber      *string   `json:"phone_number"`
	SecondaryEmail   *string   `json:"secondary_email"`
	MailingAddress   *string   `json:"mailing_address"`
	SecondaryAddress *string   `json:"secondary_address"`
	IsActive         bool      `json:"is_active"`
	Role             string    `json:"role"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// MapUserToResponse converts a user to its response body.
func MapUserToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:               user.ID,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		Email:            user.Email,
		PhoneNumber:      user.PhoneNumber,
		SecondaryEmail:   user.SecondaryEmail,
		MailingAddress:   user.MailingAddress,
		SecondaryAddress: user.SecondaryAddress,
		IsActive:         user.IsActive,
		Role:             string(user.Role),
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}

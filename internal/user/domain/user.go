// Package domain defines the user account entity and its errors.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/Felobateer/ECommerce-API/internal/errors"
)

// Role is stored with every account. It is not evaluated by the session subsystem.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User is a registered account. PasswordHash is a PHC or legacy bcrypt string.
type User struct {
	ID               uuid.UUID
	FirstName        string
	LastName         string
	Email            string
	PasswordHash     string //nolint:gosec // one-way hash, never the password
	PhoneNumber      *string
	SecondaryEmail   *string
	MailingAddress   *string
	SecondaryAddress *string
	IsActive         bool
	Role             Role
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RegisterUserInput contains the data needed to create an account.
type RegisterUserInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PhoneNumber *string
}

// UpdateUserInput is a partial update; nil fields are left unchanged.
type UpdateUserInput struct {
	FirstName        *string
	LastName         *string
	PhoneNumber      *string
	SecondaryEmail   *string
	MailingAddress   *string
	SecondaryAddress *string
}

// Apply copies every non-nil field of input onto u.
func (u *User) Apply(input *UpdateUserInput) {
	if input.FirstName != nil {
		u.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		u.LastName = *input.LastName
	}
	if input.PhoneNumber != nil {
		u.PhoneNumber = input.PhoneNumber
	}
	if input.SecondaryEmail != nil {
		u.SecondaryEmail = input.SecondaryEmail
	}
	if input.MailingAddress != nil {
		u.MailingAddress = input.MailingAddress
	}
	if input.SecondaryAddress != nil {
		u.SecondaryAddress = input.SecondaryAddress
	}
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrNotAccountOwner indicates the caller tried to act on another account.
	ErrNotAccountOwner = errors.Wrap(errors.ErrForbidden, "not the account owner")
)

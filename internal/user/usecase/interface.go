// Package usecase implements account registration and profile management.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/Felobateer/ECommerce-API/internal/user/domain"
)

// UserRepository defines persistence operations for user accounts.
// Implementations must honor a transaction carried in ctx.
type UserRepository interface {
	// Create stores a new user. Returns ErrUserAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *domain.User) error

	// Get retrieves a user by ID. Returns ErrUserNotFound if not found.
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by normalized email. Returns ErrUserNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update writes the mutable profile fields and the active flag.
	Update(ctx context.Context, user *domain.User) error

	// UpdatePasswordHash replaces the stored password hash.
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// PasswordHasher derives password hashes for new accounts.
type PasswordHasher interface {
	Hash(secret string) (string, error)
}

// UserUseCase defines account operations exposed over HTTP.
type UserUseCase interface {
	// Register creates an active customer account. The password is hashed
	// before it reaches the repository and the email is stored lowercased.
	Register(ctx context.Context, input *domain.RegisterUserInput) (*domain.User, error)

	// Get retrieves an account by ID.
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// Update applies a partial profile update and returns the stored account.
	Update(ctx context.Context, id uuid.UUID, input *domain.UpdateUserInput) (*domain.User, error)

	// Deactivate marks the account inactive. The row is kept and the call is
	// idempotent. New logins are refused afterwards.
	Deactivate(ctx context.Context, id uuid.UUID) error
}

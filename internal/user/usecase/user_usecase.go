package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Felobateer/ECommerce-API/internal/database"
	"github.com/Felobateer/ECommerce-API/internal/user/domain"
)

// userUseCase implements UserUseCase.
type userUseCase struct {
	txManager database.TxManager
	userRepo  UserRepository
	hasher    PasswordHasher
	now       func() time.Time
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	hasher PasswordHasher,
) UserUseCase {
	return &userUseCase{
		txManager: txManager,
		userRepo:  userRepo,
		hasher:    hasher,
		now:       time.Now,
	}
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *userUseCase) Register(ctx context.Context, input *domain.RegisterUserInput) (*domain.User, error) {
	hash, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := u.now().UTC()
	user := &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        NormalizeEmail(input.Email),
		PasswordHash: hash,
		PhoneNumber:  input.PhoneNumber,
		IsActive:     true,
		Role:         domain.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return u.userRepo.Get(ctx, id)
}

func (u *userUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	input *domain.UpdateUserInput,
) (*domain.User, error) {
	var user *domain.User
	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		user, err = u.userRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		user.Apply(input)
		user.UpdatedAt = u.now().UTC()
		return u.userRepo.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userUseCase) Deactivate(ctx context.Context, id uuid.UUID) error {
	return u.txManager.WithTx(ctx, func(ctx context.Context) error {
		user, err := u.userRepo.Get(ctx, id)
		if err != nil {
			return err
		}
		if !user.IsActive {
			return nil
		}

		user.IsActive = false
		user.UpdatedAt = u.now().UTC()
		return u.userRepo.Update(ctx, user)
	})
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/Felobateer/ECommerce-API/internal/auth/domain"
	"github.com/Felobateer/ECommerce-API/internal/user/domain"
	"github.com/Felobateer/ECommerce-API/internal/user/usecase/mocks"
)

type passthroughTxManager struct{}

func (passthroughTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockHasher struct {
	mock.Mock
}

func (m *mockHasher) Hash(secret string) (string, error) {
	args := m.Called(secret)
	return args.String(0), args.Error(1)
}

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestUseCase(repo *mocks.MockUserRepository, hasher *mockHasher) *userUseCase {
	uc := NewUserUseCase(passthroughTxManager{}, repo, hasher).(*userUseCase)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func TestUserUseCase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_HashesPasswordAndNormalizesEmail", func(t *testing.T) {
		repo := &mocks.MockUserRepository{}
		hasher := &mockHasher{}
		hasher.On("Hash", "Str0ng!Passw0rd").Return("$argon2id$hash", nil)
		repo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "ada@example.com" &&
				u.PasswordHash == "$argon2id$hash" &&
				u.FirstName == "Ada" &&
				u.IsActive &&
				u.Role == domain.RoleCustomer &&
				u.CreatedAt.Equal(fixedNow) &&
				u.ID != uuid.Nil
		})).Return(nil)

		user, err := newTestUseCase(repo, hasher).Register(ctx, &domain.RegisterUserInput{
			FirstName: "  Ada ",
			LastName:  "Lovelace",
			Email:     " Ada@Example.COM ",
			Password:  "Str0ng!Passw0rd",
		})

		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.NotContains(t, user.PasswordHash, "Str0ng")
		repo.AssertExpectations(t)
		hasher.AssertExpectations(t)
	})

	t.Run("Error_DuplicateEmail", func(t *testing.T) {
		repo := &mocks.MockUserRepository{}
		hasher := &mockHasher{}
		hasher.On("Hash", mock.Anything).Return("$argon2id$hash", nil)
		repo.On("Create", ctx, mock.Anything).Return(domain.ErrUserAlreadyExists)

		user, err := newTestUseCase(repo, hasher).Register(ctx, &domain.RegisterUserInput{
			Email:    "ada@example.com",
			Password: "Str0ng!Passw0rd",
		})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})

	t.Run("Error_HashingFailureSkipsRepository", func(t *testing.T) {
		repo := &mocks.MockUserRepository{}
		hasher := &mockHasher{}
		hasher.On("Hash", mock.Anything).
			Return("", authDomain.NewError(authDomain.KindHashingFailure, errors.New("entropy")))

		_, err := newTestUseCase(repo, hasher).Register(ctx, &domain.RegisterUserInput{
			Password: "Str0ng!Passw0rd",
		})

		assert.ErrorIs(t, err, authDomain.ErrHashingFailure)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserUseCase_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.Must(uuid.NewV7())
	lastName := "King"

	t.Run("Success_PartialUpdate", func(t *testing.T) {
		repo := &mocks.MockUserRepository{}
		stored := &domain.User{ID: id, FirstName: "Ada", LastName: "Lovelace", IsActive: true}
		repo.On("Get", ctx, id).Return(stored, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.FirstName == "Ada" && u.LastName == "King" && u.UpdatedAt.Equal(fixedNow)
		})).Return(nil)

		user, err := newTestUseCase(repo, &mockHasher{}).Update(ctx, id, &domain.UpdateUserInput{
			LastName: &lastName,
		})

		require.NoError(t, err)
		assert.Equal(t, "King", user.LastName)
		repo.AssertExpectations(t)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo := &mocks.MockUserRepository{}
		repo.On("Get", ctx, id).Return(nil, domain.ErrUserNotFound)

		user, err := newTestUseCase(repo, &mockHasher{}).Update(ctx, id, &domain.UpdateUserInput{})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestUserUseCase_Deactivate(t *testing.T) {
	ctx := context.Background()
	id := uuid.Must(uuid.NewV7())

	t.Run("Success_MarksInactive", func(t *testing.T) {
		repo := &mocks.MockUserRepository{}
		repo.On("Get", ctx, id).Return(&domain.User{ID: id, IsActive: true}, nil)
		repo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return !u.IsActive
		})).Return(nil)

		err := newTestUseCase(repo, &mockHasher{}).Deactivate(ctx, id)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Success_AlreadyInactiveIsNoop", func(t *testing.T) {
		repo := &mocks.MockUserRepository{}
		repo.On("Get", ctx, id).Return(&domain.User{ID: id, IsActive: false}, nil)

		err := newTestUseCase(repo, &mockHasher{}).Deactivate(ctx, id)

		assert.NoError(t, err)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "grace@example.com", NormalizeEmail("  Grace@Example.com\t"))
}

package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	authDomain "github.com/Felobateer/ECommerce-API/internal/auth/domain"
	authService "github.com/Felobateer/ECommerce-API/internal/auth/service"
	userDomain "github.com/Felobateer/ECommerce-API/internal/user/domain"
)

type loginUseCase struct {
	identities IdentityStore
	hasher     authService.CredentialHasher
	sessions   SessionUseCase
	logger     *slog.Logger
	// dummyHash is verified for unknown emails so both failure paths cost a
	// full hash comparison.
	dummyHash string
}

// NewLoginUseCase creates a LoginUseCase.
func NewLoginUseCase(
	identities IdentityStore,
	hasher authService.CredentialHasher,
	sessions SessionUseCase,
	logger *slog.Logger,
) (LoginUseCase, error) {
	dummyHash, err := hasher.Hash("login-timing-equalizer")
	if err != nil {
		return nil, err
	}

	return &loginUseCase{
		identities: identities,
		hasher:     hasher,
		sessions:   sessions,
		logger:     logger,
		dummyHash:  dummyHash,
	}, nil
}

func (l *loginUseCase) Login(ctx context.Context, email, password string) (*authDomain.Token, error) {
	user, err := l.identities.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, userDomain.ErrUserNotFound) {
			l.hasher.Verify(password, l.dummyHash)
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !l.hasher.Verify(password, user.PasswordHash) {
		return nil, authDomain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, authDomain.ErrAccountInactive
	}

	if l.hasher.NeedsRehash(user.PasswordHash) {
		l.upgradeHash(ctx, user, password)
	}

	return l.sessions.Issue(ctx, user.ID)
}

// upgradeHash replaces a legacy hash. Failures are logged and do not block login.
func (l *loginUseCase) upgradeHash(ctx context.Context, user *userDomain.User, password string) {
	hash, err := l.hasher.Hash(password)
	if err == nil {
		err = l.identities.UpdatePasswordHash(ctx, user.ID, hash)
	}
	if err != nil {
		l.logger.Warn("failed to upgrade password hash",
			slog.String("user_id", user.ID.String()),
			slog.Any("error", err),
		)
		return
	}
	l.logger.Info("upgraded password hash", slog.String("user_id", user.ID.String()))
}

package app

import (
	"fmt"

	"github.com/Felobateer/ECommerce-API/internal/database"
	userHTTP "github.com/Felobateer/ECommerce-API/internal/user/http"
	userMySQL "github.com/Felobateer/ECommerce-API/internal/user/repository/mysql"
	userPostgreSQL "github.com/Felobateer/ECommerce-API/internal/user/repository/postgresql"
	userUsecase "github.com/Felobateer/ECommerce-API/internal/user/usecase"
)

// UserRepository returns the user repository for DB_DRIVER. The login flow
// reads the same store as its IdentityStore.
func (c *Container) UserRepository() (userUsecase.UserRepository, error) {
	c.userRepoInit.Do(func() {
		repo, err := c.initUserRepository()
		c.store("userRepository", err)
		c.userRepository = repo
	})
	if err := c.loadErr("userRepository"); err != nil {
		return nil, err
	}
	return c.userRepository, nil
}

// UserUseCase returns the account use case.
func (c *Container) UserUseCase() (userUsecase.UserUseCase, error) {
	c.userUseCaseInit.Do(func() {
		uc, err := c.initUserUseCase()
		c.store("userUseCase", err)
		c.userUseCase = uc
	})
	if err := c.loadErr("userUseCase"); err != nil {
		return nil, err
	}
	return c.userUseCase, nil
}

// UserHandler returns the account HTTP handler.
func (c *Container) UserHandler() (*userHTTP.UserHandler, error) {
	c.userHandlerInit.Do(func() {
		uc, err := c.UserUseCase()
		if err != nil {
			c.store("userHandler", fmt.Errorf("failed to get user use case for user handler: %w", err))
			return
		}
		c.userHandler = userHTTP.NewUserHandler(uc, c.Logger())
	})
	if err := c.loadErr("userHandler"); err != nil {
		return nil, err
	}
	return c.userHandler, nil
}

func (c *Container) initUserRepository() (userUsecase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return userMySQL.NewMySQLUserRepository(db), nil
	case database.DriverPostgres:
		return userPostgreSQL.NewPostgreSQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initUserUseCase() (userUsecase.UserUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for user use case: %w", err)
	}

	repo, err := c.UserRepository()
	if err != nil {
		return nil, err
	}

	hasher, err := c.CredentialHasher()
	if err != nil {
		return nil, err
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	return userUsecase.NewUserUseCaseWithMetrics(
		userUsecase.NewUserUseCase(txManager, repo, hasher),
		bm,
	), nil
}

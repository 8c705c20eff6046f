package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/Felobateer/ECommerce-API/internal/auth/http"
	authMySQL "github.com/Felobateer/ECommerce-API/internal/auth/repository/mysql"
	authPostgreSQL "github.com/Felobateer/ECommerce-API/internal/auth/repository/postgresql"
	authRedis "github.com/Felobateer/ECommerce-API/internal/auth/repository/redis"
	authService "github.com/Felobateer/ECommerce-API/internal/auth/service"
	authUseCase "github.com/Felobateer/ECommerce-API/internal/auth/usecase"
	"github.com/Felobateer/ECommerce-API/internal/config"
	"github.com/Felobateer/ECommerce-API/internal/database"
)

// CredentialHasher returns the Argon2id password hasher shared by
// registration and login.
func (c *Container) CredentialHasher() (authService.CredentialHasher, error) {
	c.hasherInit.Do(func() {
		hasher, err := authService.NewCredentialHasher()
		if err != nil {
			c.store("credentialHasher", fmt.Errorf("failed to create credential hasher: %w", err))
			return
		}
		c.credentialHasher = hasher
	})
	if err := c.loadErr("credentialHasher"); err != nil {
		return nil, err
	}
	return c.credentialHasher, nil
}

// RevocationRepository returns the revocation store selected by
// AUTH_REVOCATION_STORE and DB_DRIVER.
func (c *Container) RevocationRepository() (authUseCase.RevocationRepository, error) {
	c.revocationRepoInit.Do(func() {
		repo, err := c.initRevocationRepository()
		c.store("revocationRepository", err)
		c.revocationRepository = repo
	})
	if err := c.loadErr("revocationRepository"); err != nil {
		return nil, err
	}
	return c.revocationRepository, nil
}

// SessionUseCase returns the session authority, instrumented when metrics are enabled.
func (c *Container) SessionUseCase() (authUseCase.SessionUseCase, error) {
	c.sessionUseCaseInit.Do(func() {
		uc, err := c.initSessionUseCase()
		c.store("sessionUseCase", err)
		c.sessionUseCase = uc
	})
	if err := c.loadErr("sessionUseCase"); err != nil {
		return nil, err
	}
	return c.sessionUseCase, nil
}

// LoginUseCase returns the credential exchange use case.
func (c *Container) LoginUseCase() (authUseCase.LoginUseCase, error) {
	c.loginUseCaseInit.Do(func() {
		uc, err := c.initLoginUseCase()
		c.store("loginUseCase", err)
		c.loginUseCase = uc
	})
	if err := c.loadErr("loginUseCase"); err != nil {
		return nil, err
	}
	return c.loginUseCase, nil
}

// AuthorizationGate returns the middleware guarding protected routes.
func (c *Container) AuthorizationGate() (*authHTTP.AuthorizationGate, error) {
	c.gateInit.Do(func() {
		sessions, err := c.SessionUseCase()
		if err != nil {
			c.store("authorizationGate", fmt.Errorf("failed to get session use case for gate: %w", err))
			return
		}
		c.authorizationGate = authHTTP.NewAuthorizationGate(sessions, c.Logger())
	})
	if err := c.loadErr("authorizationGate"); err != nil {
		return nil, err
	}
	return c.authorizationGate, nil
}

// SessionHandler returns the login, logout and me handlers.
func (c *Container) SessionHandler() (*authHTTP.SessionHandler, error) {
	c.sessionHandlerInit.Do(func() {
		login, err := c.LoginUseCase()
		if err != nil {
			c.store("sessionHandler", fmt.Errorf("failed to get login use case for session handler: %w", err))
			return
		}
		sessions, err := c.SessionUseCase()
		if err != nil {
			c.store("sessionHandler", fmt.Errorf("failed to get session use case for session handler: %w", err))
			return
		}
		c.sessionHandler = authHTTP.NewSessionHandler(login, sessions, c.Logger())
	})
	if err := c.loadErr("sessionHandler"); err != nil {
		return nil, err
	}
	return c.sessionHandler, nil
}

// RevocationPurger returns the background purge worker.
func (c *Container) RevocationPurger() (*authUseCase.RevocationPurger, error) {
	c.purgerInit.Do(func() {
		sessions, err := c.SessionUseCase()
		if err != nil {
			c.store("revocationPurger", fmt.Errorf("failed to get session use case for purger: %w", err))
			return
		}
		c.revocationPurger = authUseCase.NewRevocationPurger(
			sessions,
			c.config.AuthRevocationPurgeInterval,
			c.Logger(),
		)
	})
	if err := c.loadErr("revocationPurger"); err != nil {
		return nil, err
	}
	return c.revocationPurger, nil
}

func (c *Container) rateLimitMiddleware(ctx context.Context) gin.HandlerFunc {
	return authHTTP.RateLimitMiddleware(
		ctx,
		c.config.RateLimitRequestsPerSec,
		c.config.RateLimitBurst,
		c.Logger(),
	)
}

func (c *Container) initRevocationRepository() (authUseCase.RevocationRepository, error) {
	if c.config.AuthRevocationStore == config.RevocationStoreRedis {
		client, err := c.RedisClient()
		if err != nil {
			return nil, fmt.Errorf("failed to get redis client for revocation repository: %w", err)
		}
		return authRedis.NewRedisRevocationRepository(client), nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for revocation repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return authMySQL.NewMySQLRevocationRepository(db), nil
	case database.DriverPostgres:
		return authPostgreSQL.NewPostgreSQLRevocationRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initSessionUseCase() (authUseCase.SessionUseCase, error) {
	revocations, err := c.RevocationRepository()
	if err != nil {
		return nil, err
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	sessions := authUseCase.NewSessionUseCase(authUseCase.SessionConfig{
		SigningSecret: c.config.AuthSigningSecret.Bytes(),
		TokenTTL:      c.config.AuthTokenTTL,
		Issuer:        c.config.AuthTokenIssuer,
	}, revocations)

	return authUseCase.NewSessionUseCaseWithMetrics(sessions, bm), nil
}

func (c *Container) initLoginUseCase() (authUseCase.LoginUseCase, error) {
	users, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for login use case: %w", err)
	}

	hasher, err := c.CredentialHasher()
	if err != nil {
		return nil, err
	}

	sessions, err := c.SessionUseCase()
	if err != nil {
		return nil, err
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	login, err := authUseCase.NewLoginUseCase(users, hasher, sessions, c.Logger())
	if err != nil {
		return nil, fmt.Errorf("failed to create login use case: %w", err)
	}

	return authUseCase.NewLoginUseCaseWithMetrics(login, bm), nil
}

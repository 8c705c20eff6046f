package app

import (
	"fmt"

	cartHTTP "github.com/Felobateer/ECommerce-API/internal/cart/http"
	cartMySQL "github.com/Felobateer/ECommerce-API/internal/cart/repository/mysql"
	cartPostgreSQL "github.com/Felobateer/ECommerce-API/internal/cart/repository/postgresql"
	cartUsecase "github.com/Felobateer/ECommerce-API/internal/cart/usecase"
	"github.com/Felobateer/ECommerce-API/internal/database"
)

// CartItemRepository returns the cart item repository for DB_DRIVER.
func (c *Container) CartItemRepository() (cartUsecase.CartItemRepository, error) {
	c.cartRepoInit.Do(func() {
		repo, err := c.initCartItemRepository()
		c.store("cartItemRepository", err)
		c.cartItemRepository = repo
	})
	if err := c.loadErr("cartItemRepository"); err != nil {
		return nil, err
	}
	return c.cartItemRepository, nil
}

// CartUseCase returns the cart use case.
func (c *Container) CartUseCase() (cartUsecase.CartUseCase, error) {
	c.cartUseCaseInit.Do(func() {
		repo, err := c.CartItemRepository()
		if err != nil {
			c.store("cartUseCase", err)
			return
		}
		bm, err := c.BusinessMetrics()
		if err != nil {
			c.store("cartUseCase", err)
			return
		}
		c.cartUseCase = cartUsecase.NewCartUseCaseWithMetrics(cartUsecase.NewCartUseCase(repo), bm)
	})
	if err := c.loadErr("cartUseCase"); err != nil {
		return nil, err
	}
	return c.cartUseCase, nil
}

// CartHandler returns the cart HTTP handler.
func (c *Container) CartHandler() (*cartHTTP.CartHandler, error) {
	c.cartHandlerInit.Do(func() {
		uc, err := c.CartUseCase()
		if err != nil {
			c.store("cartHandler", fmt.Errorf("failed to get cart use case for cart handler: %w", err))
			return
		}
		c.cartHandler = cartHTTP.NewCartHandler(uc, c.Logger())
	})
	if err := c.loadErr("cartHandler"); err != nil {
		return nil, err
	}
	return c.cartHandler, nil
}

func (c *Container) initCartItemRepository() (cartUsecase.CartItemRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for cart item repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return cartMySQL.NewMySQLCartItemRepository(db), nil
	case database.DriverPostgres:
		return cartPostgreSQL.NewPostgreSQLCartItemRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

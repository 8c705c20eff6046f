// Package app wires configuration, storage and use cases into the servers
// and workers the commands run.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	authHTTP "github.com/Felobateer/ECommerce-API/internal/auth/http"
	authService "github.com/Felobateer/ECommerce-API/internal/auth/service"
	authUseCase "github.com/Felobateer/ECommerce-API/internal/auth/usecase"
	cartHTTP "github.com/Felobateer/ECommerce-API/internal/cart/http"
	cartUsecase "github.com/Felobateer/ECommerce-API/internal/cart/usecase"
	"github.com/Felobateer/ECommerce-API/internal/config"
	"github.com/Felobateer/ECommerce-API/internal/database"
	"github.com/Felobateer/ECommerce-API/internal/http"
	"github.com/Felobateer/ECommerce-API/internal/metrics"
	userHTTP "github.com/Felobateer/ECommerce-API/internal/user/http"
	userUsecase "github.com/Felobateer/ECommerce-API/internal/user/usecase"
)

const connectTimeout = 10 * time.Second

// Container builds components lazily on first access and caches them,
// including any initialization error.
type Container struct {
	config *config.Config

	logger          *slog.Logger
	db              *sql.DB
	redisClient     *redis.Client
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	credentialHasher     authService.CredentialHasher
	revocationRepository authUseCase.RevocationRepository
	sessionUseCase       authUseCase.SessionUseCase
	loginUseCase         authUseCase.LoginUseCase
	authorizationGate    *authHTTP.AuthorizationGate
	sessionHandler       *authHTTP.SessionHandler
	revocationPurger     *authUseCase.RevocationPurger

	userRepository userUsecase.UserRepository
	userUseCase    userUsecase.UserUseCase
	userHandler    *userHTTP.UserHandler

	cartItemRepository cartUsecase.CartItemRepository
	cartUseCase        cartUsecase.CartUseCase
	cartHandler        *cartHTTP.CartHandler

	httpServer    *http.Server
	metricsServer *http.MetricsServer

	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	redisInit           sync.Once
	txManagerInit       sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	hasherInit          sync.Once
	revocationRepoInit  sync.Once
	sessionUseCaseInit  sync.Once
	loginUseCaseInit    sync.Once
	gateInit            sync.Once
	sessionHandlerInit  sync.Once
	purgerInit          sync.Once
	userRepoInit        sync.Once
	userUseCaseInit     sync.Once
	userHandlerInit     sync.Once
	cartRepoInit        sync.Once
	cartUseCaseInit     sync.Once
	cartHandlerInit     sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a container for cfg.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the JSON logger writing to stdout at the configured level.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database pool, connecting on first call.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := c.initDB()
		c.store("db", err)
		c.db = db
	})
	if err := c.loadErr("db"); err != nil {
		return nil, err
	}
	return c.db, nil
}

// RedisClient returns the Redis client backing the redis revocation store.
func (c *Container) RedisClient() (*redis.Client, error) {
	c.redisInit.Do(func() {
		client, err := c.initRedisClient()
		c.store("redis", err)
		c.redisClient = client
	})
	if err := c.loadErr("redis"); err != nil {
		return nil, err
	}
	return c.redisClient, nil
}

// TxManager returns the transaction manager for the database pool.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.store("txManager", fmt.Errorf("failed to get database for tx manager: %w", err))
			return
		}
		c.txManager = database.NewTxManager(db)
	})
	if err := c.loadErr("txManager"); err != nil {
		return nil, err
	}
	return c.txManager, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.store("metricsProvider", fmt.Errorf("failed to create metrics provider: %w", err))
			return
		}
		c.metricsProvider = provider
	})
	if err := c.loadErr("metricsProvider"); err != nil {
		return nil, err
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the use case recorder. It is a no-op when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.store("businessMetrics", err)
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}
		bm, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.store("businessMetrics", fmt.Errorf("failed to create business metrics: %w", err))
			return
		}
		c.businessMetrics = bm
	})
	if err := c.loadErr("businessMetrics"); err != nil {
		return nil, err
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the API server with every route mounted. ctx bounds the
// rate limiter's background cleanup and is only read on the first call.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer(ctx)
		c.store("httpServer", err)
		c.httpServer = server
	})
	if err := c.loadErr("httpServer"); err != nil {
		return nil, err
	}
	return c.httpServer, nil
}

// MetricsServer returns the server exposing /metrics on MetricsPort.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.store("metricsServer", err)
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if err := c.loadErr("metricsServer"); err != nil {
		return nil, err
	}
	return c.metricsServer, nil
}

// Shutdown stops the servers and closes every connection opened so far.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("redis close: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

func (c *Container) store(key string, err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initErrors[key] = err
}

func (c *Container) loadErr(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initErrors[key]
}

func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func (c *Container) initDB() (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	db, err := database.Connect(ctx, database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (c *Container) initRedisClient() (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     c.config.RedisAddr,
		Password: string(c.config.RedisPassword),
		DB:       c.config.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	gate, err := c.AuthorizationGate()
	if err != nil {
		return nil, err
	}

	sessionHandler, err := c.SessionHandler()
	if err != nil {
		return nil, err
	}

	userHandler, err := c.UserHandler()
	if err != nil {
		return nil, err
	}

	cartHandler, err := c.CartHandler()
	if err != nil {
		return nil, err
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}

	handlers := http.Handlers{
		Gate:     gate,
		Sessions: sessionHandler,
		Users:    userHandler,
		Carts:    cartHandler,
	}
	if c.config.RateLimitEnabled {
		handlers.RateLimit = c.rateLimitMiddleware(ctx)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(c.config, handlers, provider)
	return server, nil
}

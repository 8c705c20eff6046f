// Package http assembles the API router and runs the HTTP servers.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/Felobateer/ECommerce-API/internal/auth/http"
	cartHTTP "github.com/Felobateer/ECommerce-API/internal/cart/http"
	"github.com/Felobateer/ECommerce-API/internal/config"
	"github.com/Felobateer/ECommerce-API/internal/metrics"
	userHTTP "github.com/Felobateer/ECommerce-API/internal/user/http"
)

const readinessTimeout = 2 * time.Second

// Handlers groups everything SetupRouter mounts.
type Handlers struct {
	Gate     *authHTTP.AuthorizationGate
	Sessions *authHTTP.SessionHandler
	Users    *userHTTP.UserHandler
	Carts    *cartHTTP.CartHandler
	// RateLimit runs after the gate on protected routes. Nil disables it.
	RateLimit gin.HandlerFunc
}

// Server is the public API server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a server bound to host:port. Call SetupRouter before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine. Login and registration are public; every
// other /v1 route sits behind the authorization gate.
func (s *Server) SetupRouter(cfg *config.Config, h Handlers, metricsProvider *metrics.Provider) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsEnabled && metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	v1.POST("/auth/login", h.Sessions.LoginHandler)
	v1.POST("/users", h.Users.RegisterHandler)

	protected := v1.Group("")
	protected.Use(h.Gate.Middleware())
	if h.RateLimit != nil {
		protected.Use(h.RateLimit)
	}

	protected.POST("/auth/logout", h.Sessions.LogoutHandler)
	protected.GET("/auth/me", h.Sessions.MeHandler)

	users := protected.Group("/users")
	users.GET("/:id", h.Users.GetHandler)
	users.PATCH("/:id", h.Users.UpdateHandler)
	users.DELETE("/:id", h.Users.DeactivateHandler)

	cart := protected.Group("/cart")
	cart.GET("", h.Carts.GetHandler)
	cart.DELETE("", h.Carts.ClearHandler)
	cart.POST("/items", h.Carts.AddItemHandler)
	cart.DELETE("/items/:id", h.Carts.RemoveItemHandler)

	s.router = router
}

// GetHandler returns the configured router.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	database := "ok"
	if s.db == nil {
		database = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			database = "error"
		}
	}

	if database != "ok" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": database},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": database},
	})
}

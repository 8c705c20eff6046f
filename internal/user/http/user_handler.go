// Package http provides HTTP handlers for account registration and profile management.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/Felobateer/ECommerce-API/internal/auth/http"
	apperrors "github.com/Felobateer/ECommerce-API/internal/errors"
	"github.com/Felobateer/ECommerce-API/internal/httputil"
	"github.com/Felobateer/ECommerce-API/internal/user/domain"
	"github.com/Felobateer/ECommerce-API/internal/user/http/dto"
	"github.com/Felobateer/ECommerce-API/internal/user/usecase"
)

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userUseCase usecase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// RegisterHandler creates an account.
// POST /v1/users - public.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapUserToResponse(user))
}

// GetHandler returns the caller's own account.
// GET /v1/users/:id - gated.
func (h *UserHandler) GetHandler(c *gin.Context) {
	id, ok := h.ownAccountID(c)
	if !ok {
		return
	}

	user, err := h.userUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// UpdateHandler applies a partial profile update.
// PATCH /v1/users/:id - gated.
func (h *UserHandler) UpdateHandler(c *gin.Context) {
	id, ok := h.ownAccountID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.Update(c.Request.Context(), id, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// DeactivateHandler soft-deletes the caller's account.
// DELETE /v1/users/:id - gated.
func (h *UserHandler) DeactivateHandler(c *gin.Context) {
	id, ok := h.ownAccountID(c)
	if !ok {
		return
	}

	if err := h.userUseCase.Deactivate(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ownAccountID parses :id and checks it matches the gate identity. It writes
// the error response itself when it returns false.
func (h *UserHandler) ownAccountID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, apperrors.New("invalid user id: must be a valid UUID"), h.logger)
		return uuid.Nil, false
	}

	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return uuid.Nil, false
	}
	if identity != id {
		httputil.HandleErrorGin(c, domain.ErrNotAccountOwner, h.logger)
		return uuid.Nil, false
	}

	return id, true
}

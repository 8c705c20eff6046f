// Package http provides HTTP handlers for the shopping cart.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/Felobateer/ECommerce-API/internal/auth/http"
	"github.com/Felobateer/ECommerce-API/internal/cart/http/dto"
	"github.com/Felobateer/ECommerce-API/internal/cart/usecase"
	apperrors "github.com/Felobateer/ECommerce-API/internal/errors"
	"github.com/Felobateer/ECommerce-API/internal/httputil"
)

// CartHandler serves the caller's cart. Every route must sit behind the gate.
type CartHandler struct {
	cartUseCase usecase.CartUseCase
	logger      *slog.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartUseCase usecase.CartUseCase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		cartUseCase: cartUseCase,
		logger:      logger,
	}
}

// GetHandler returns the caller's cart.
// GET /v1/cart
func (h *CartHandler) GetHandler(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}

	cart, err := h.cartUseCase.Get(c.Request.Context(), owner)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCartToResponse(cart))
}

// AddItemHandler adds a product to the caller's cart.
// POST /v1/cart/items
func (h *CartHandler) AddItemHandler(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}

	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	item, err := h.cartUseCase.AddItem(c.Request.Context(), owner, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCartItemToResponse(item))
}

// RemoveItemHandler deletes one item from the caller's cart.
// DELETE /v1/cart/items/:id
func (h *CartHandler) RemoveItemHandler(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, apperrors.New("invalid item id: must be a valid UUID"), h.logger)
		return
	}

	if err := h.cartUseCase.RemoveItem(c.Request.Context(), owner, itemID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ClearHandler empties the caller's cart.
// DELETE /v1/cart
func (h *CartHandler) ClearHandler(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}

	if err := h.cartUseCase.Clear(c.Request.Context(), owner); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CartHandler) owner(c *gin.Context) (uuid.UUID, bool) {
	identity, ok := authHTTP.GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return uuid.Nil, false
	}
	return identity, true
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Felobateer/ECommerce-API/internal/auth/http/dto"
	authUseCase "github.com/Felobateer/ECommerce-API/internal/auth/usecase"
	apperrors "github.com/Felobateer/ECommerce-API/internal/errors"
	"github.com/Felobateer/ECommerce-API/internal/httputil"
)

// SessionHandler serves login, logout and identity lookups.
type SessionHandler struct {
	loginUseCase   authUseCase.LoginUseCase
	sessionUseCase authUseCase.SessionUseCase
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(
	loginUseCase authUseCase.LoginUseCase,
	sessionUseCase authUseCase.SessionUseCase,
	logger *slog.Logger,
) *SessionHandler {
	return &SessionHandler{
		loginUseCase:   loginUseCase,
		sessionUseCase: sessionUseCase,
		logger:         logger,
	}
}

// LoginHandler exchanges credentials for a bearer token.
// POST /v1/auth/login - public.
func (h *SessionHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	token, err := h.loginUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTokenToResponse(token))
}

// LogoutHandler revokes the bearer token the request was authorized with.
// POST /v1/auth/logout - gated.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	token, ok := BearerToken(c.GetHeader("Authorization"))
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	if err := h.sessionUseCase.Revoke(c.Request.Context(), token); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// MeHandler returns the identity resolved by the gate.
// GET /v1/auth/me - gated.
func (h *SessionHandler) MeHandler(c *gin.Context) {
	identity, ok := GetIdentity(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.IdentityResponse{UserID: identity.String()})
}

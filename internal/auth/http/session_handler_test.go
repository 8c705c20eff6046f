package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/Felobateer/ECommerce-API/internal/auth/domain"
	"github.com/Felobateer/ECommerce-API/internal/auth/http/dto"
	"github.com/Felobateer/ECommerce-API/internal/auth/usecase/mocks"
)

func setupSessionRouter(t *testing.T) (*gin.Engine, *mocks.MockLoginUseCase, *mocks.MockSessionUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	login := &mocks.MockLoginUseCase{}
	sessions := &mocks.MockSessionUseCase{}
	handler := NewSessionHandler(login, sessions, discardLogger())
	gate := NewAuthorizationGate(sessions, discardLogger())

	router := gin.New()
	router.POST("/v1/auth/login", handler.LoginHandler)
	protected := router.Group("/v1/auth", gate.Middleware())
	protected.POST("/logout", handler.LogoutHandler)
	protected.GET("/me", handler.MeHandler)

	return router, login, sessions
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	r.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, r)
	return w
}

func TestSessionHandler_LoginHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, login, _ := setupSessionRouter(t)
		expiresAt := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
		login.On("Login", mock.Anything, "ada@example.com", "Str0ng!Passw0rd").
			Return(&authDomain.Token{Value: "signed.jwt.value", ExpiresAt: expiresAt}, nil)

		w := postJSON(router, "/v1/auth/login", dto.LoginRequest{
			Email:    "ada@example.com",
			Password: "Str0ng!Passw0rd",
		})

		require.Equal(t, http.StatusOK, w.Code)
		var response dto.TokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "signed.jwt.value", response.Token)
		assert.Equal(t, "Bearer", response.TokenType)
		assert.True(t, expiresAt.Equal(response.ExpiresAt))
	})

	t.Run("Error_InvalidCredentials", func(t *testing.T) {
		router, login, _ := setupSessionRouter(t)
		login.On("Login", mock.Anything, "ada@example.com", "wrong").
			Return(nil, authDomain.ErrInvalidCredentials)

		w := postJSON(router, "/v1/auth/login", dto.LoginRequest{Email: "ada@example.com", Password: "wrong"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Error_InactiveAccount", func(t *testing.T) {
		router, login, _ := setupSessionRouter(t)
		login.On("Login", mock.Anything, "ada@example.com", "Str0ng!Passw0rd").
			Return(nil, authDomain.ErrAccountInactive)

		w := postJSON(router, "/v1/auth/login", dto.LoginRequest{
			Email:    "ada@example.com",
			Password: "Str0ng!Passw0rd",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Error_ValidationSkipsUseCase", func(t *testing.T) {
		router, login, _ := setupSessionRouter(t)

		w := postJSON(router, "/v1/auth/login", dto.LoginRequest{Email: "not-an-email"})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		login.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_MalformedJSON", func(t *testing.T) {
		router, _, _ := setupSessionRouter(t)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewBufferString("{"))
		r.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSessionHandler_LogoutHandler(t *testing.T) {
	identity := uuid.Must(uuid.NewV7())

	t.Run("Success_RevokesPresentedToken", func(t *testing.T) {
		router, _, sessions := setupSessionRouter(t)
		sessions.On("Authorize", mock.Anything, "live").Return(identity, nil)
		sessions.On("Revoke", mock.Anything, "live").Return(nil).Once()

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
		r.Header.Set("Authorization", "Bearer live")
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		sessions.AssertExpectations(t)
	})

	t.Run("Error_StoreUnavailable", func(t *testing.T) {
		router, _, sessions := setupSessionRouter(t)
		sessions.On("Authorize", mock.Anything, "live").Return(identity, nil)
		sessions.On("Revoke", mock.Anything, "live").
			Return(authDomain.NewError(authDomain.KindStoreUnavailable, assert.AnError))

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
		r.Header.Set("Authorization", "Bearer live")
		router.ServeHTTP(w, r)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestSessionHandler_MeHandler(t *testing.T) {
	router, _, sessions := setupSessionRouter(t)
	identity := uuid.Must(uuid.NewV7())
	sessions.On("Authorize", mock.Anything, "live").Return(identity, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	r.Header.Set("Authorization", "Bearer live")
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"`+identity.String()+`"}`, w.Body.String())
}

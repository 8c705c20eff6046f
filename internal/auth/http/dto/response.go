package dto

import (
	"time"

	authDomain "github.com/Felobateer/ECommerce-API/internal/auth/domain"
)

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MapTokenToResponse converts an issued token into its response body.
func MapTokenToResponse(token *authDomain.Token) TokenResponse {
	return TokenResponse{
		Token:     token.Value,
		TokenType: "Bearer",
		ExpiresAt: token.ExpiresAt,
	}
}

// IdentityResponse is returned by GET /v1/auth/me.
type IdentityResponse struct {
	UserID string `json:"user_id"`
}

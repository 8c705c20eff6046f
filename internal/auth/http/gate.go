package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/Felobateer/ECommerce-API/internal/auth/domain"
	apperrors "github.com/Felobateer/ECommerce-API/internal/errors"
	"github.com/Felobateer/ECommerce-API/internal/httputil"
)

// RejectReason explains why the gate refused a request.
type RejectReason string

const (
	ReasonMissingCredential  RejectReason = "missing_credential"
	ReasonUnauthorized       RejectReason = "unauthorized"
	ReasonServiceUnavailable RejectReason = "service_unavailable"
)

// Decision is the terminal outcome of evaluating one request.
// Reason is empty when the request is authorized.
type Decision struct {
	Identity uuid.UUID
	Reason   RejectReason
	Err      error
}

// Authorized reports whether the request may proceed.
func (d Decision) Authorized() bool {
	return d.Reason == ""
}

// Status is the HTTP status of a rejection, or 200 when authorized.
func (d Decision) Status() int {
	switch d.Reason {
	case "":
		return http.StatusOK
	case ReasonServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusUnauthorized
	}
}

// Authorizer resolves a bearer token to the identity it was issued for.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (uuid.UUID, error)
}

// AuthorizationGate checks the bearer credential of every protected request
// exactly once.
type AuthorizationGate struct {
	sessions Authorizer
	logger   *slog.Logger
}

// NewAuthorizationGate creates a gate backed by sessions.
func NewAuthorizationGate(sessions Authorizer, logger *slog.Logger) *AuthorizationGate {
	return &AuthorizationGate{
		sessions: sessions,
		logger:   logger,
	}
}

// BearerToken extracts the credential from an Authorization header value.
// The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// Evaluate decides whether r may proceed. A request without a bearer
// credential is rejected without consulting the session authority.
func (g *AuthorizationGate) Evaluate(r *http.Request) Decision {
	token, ok := BearerToken(r.Header.Get("Authorization"))
	if !ok {
		return Decision{Reason: ReasonMissingCredential, Err: apperrors.ErrUnauthorized}
	}

	identity, err := g.sessions.Authorize(r.Context(), token)
	if err != nil {
		kind, _ := authDomain.KindOf(err)
		switch kind {
		case authDomain.KindTokenInvalid, authDomain.KindTokenExpired, authDomain.KindTokenRevoked:
			return Decision{Reason: ReasonUnauthorized, Err: err}
		default:
			if kind != authDomain.KindStoreUnavailable {
				err = authDomain.NewError(authDomain.KindStoreUnavailable, err)
			}
			return Decision{Reason: ReasonServiceUnavailable, Err: err}
		}
	}

	return Decision{Identity: identity}
}

// Middleware adapts the gate to gin. Authorized requests continue with the
// identity attached to the request context.
func (g *AuthorizationGate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		decision := g.Evaluate(c.Request)
		g.log(c, decision, time.Since(start))

		if !decision.Authorized() {
			switch decision.Reason {
			case ReasonMissingCredential:
				c.Header("WWW-Authenticate", `Bearer`)
			case ReasonUnauthorized:
				c.Header("WWW-Authenticate", `Bearer error="invalid_token"`)
			}
			httputil.HandleErrorGin(c, decision.Err, nil)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), decision.Identity))
		c.Next()
	}
}

func (g *AuthorizationGate) log(c *gin.Context, decision Decision, elapsed time.Duration) {
	attrs := []any{
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Duration("elapsed", elapsed),
	}

	switch decision.Reason {
	case "":
		g.logger.Debug("request authorized",
			append(attrs, slog.String("user_id", decision.Identity.String()))...)
	case ReasonServiceUnavailable:
		g.logger.Warn("request rejected",
			append(attrs, slog.String("reason", string(decision.Reason)), slog.Any("error", decision.Err))...)
	default:
		attrs = append(attrs, slog.String("reason", string(decision.Reason)))
		if kind, ok := authDomain.KindOf(decision.Err); ok {
			attrs = append(attrs, slog.String("kind", string(kind)))
		}
		g.logger.Info("request rejected", attrs...)
	}
}

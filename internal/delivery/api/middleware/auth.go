// Package middleware holds the echo middleware specific to the exposure API.
package middleware

import (
	"strings"

	"exposure/config"
	"exposure/internal/delivery/api/response"
	deliverycontext "exposure/internal/delivery/context"
	domainerrors "exposure/internal/domain/errors"
	"exposure/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware guards routes with bearer access tokens.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	enabled  bool
}

// NewAuthMiddleware is the constructor for AuthMiddleware. With auth disabled
// in the configuration every request passes.
func NewAuthMiddleware(tokenSvc service.TokenService, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc: tokenSvc,
		enabled:  cfg.Auth != nil && cfg.Auth.Enabled,
	}
}

// Authenticate validates the Authorization header and records the client.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.enabled {
			return next(c)
		}

		scheme, token, found := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
		if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")

			return response.Problem(c, domainerrors.ErrInvalidToken.HTTPCode(), domainerrors.ErrInvalidToken.ErrorCode(), "")
		}

		claims, err := m.tokenSvc.ValidateToken(token)
		if err != nil {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Bearer error="invalid_token"`)

			return response.Problem(c, domainerrors.ErrInvalidToken.HTTPCode(), domainerrors.ErrInvalidToken.ErrorCode(), "")
		}

		deliverycontext.SetClient(c, claims.Subject)

		return next(c)
	}
}

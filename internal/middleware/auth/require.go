package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mlazarev/book-library/internal/tokens"
)

type Middleware struct {
	JWTSecret []byte
}

func New(secret []byte) *Middleware {
	return &Middleware{JWTSecret: secret}
}

type ValidatorFunc func(claims *tokens.AccessClaims) error

func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(claims *tokens.AccessClaims) error {
		if !claims.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

func (m *Middleware) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := bearerToken(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
		}

		claims, err := tokens.ClaimsFromToken(raw, m.JWTSecret)
		if err != nil || claims == nil {
			// Covers both bad signatures and expired tokens.
			return echo.NewHTTPError(http.StatusForbidden, "invalid or expired token")
		}

		if validator != nil {
			if validationErr := validator(claims); validationErr != nil {
				return validationErr
			}
		}

		setUserContext(c, claims)
		return next(c)
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims) {
	c.Set("user_id", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("is_admin", claims.IsAdmin)
}

package middleware // reusable HTTP middleware for the storefront API

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/periodical-store/internal/utils"
)

// Context keys set by JWTAuth.
const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// injects the token's subject and role into the request context.  The
// provided secret must match the one used when issuing tokens.  Handlers read
// the identity back with UserID and Role.  A missing or invalid token is
// answered with 401.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := BearerToken(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set(ctxUserID, claims.UserID)
			c.Set(ctxRole, claims.Role)
			return next(c)
		}
	}
}

// OptionalJWT behaves like JWTAuth when a valid bearer token is present and
// passes the request through untouched otherwise.  It lets the rate limiter
// key public routes by user when one is known.
func OptionalJWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw, ok := BearerToken(c); ok {
				if claims, err := utils.ParseAccessToken(secret, raw); err == nil {
					c.Set(ctxUserID, claims.UserID)
					c.Set(ctxRole, claims.Role)
				}
			}
			return next(c)
		}
	}
}

// BearerToken extracts the raw token from an "Authorization: Bearer" header.
// It reports false when the header is absent, uses another scheme or carries
// an empty token.
func BearerToken(c echo.Context) (string, bool) {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	return raw, raw != ""
}

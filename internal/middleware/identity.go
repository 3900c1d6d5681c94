package middleware

// identity.go exposes the caller identity stored by JWTAuth to handlers and
// to the cache and rate-limit key builders.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// UserID returns the authenticated user's id.
func UserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(ctxUserID).(uint64)
	return id, ok && id != 0
}

// Role returns the authenticated user's role.
func Role(c echo.Context) (string, bool) {
	r, ok := c.Get(ctxRole).(string)
	return r, ok && r != ""
}

// userKey returns the user id as a string for cache and rate-limit keys, or
// "guest" when no user is authenticated.
func userKey(c echo.Context) string {
	if id, ok := UserID(c); ok {
		return strconv.FormatUint(id, 10)
	}
	return "guest"
}

package middleware // middleware provides reusable HTTP middleware for the API

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gkidjo/train-booking-api/internal/response"
	"github.com/gkidjo/train-booking-api/internal/utils"
)

// JWTAuth returns a middleware that validates a Bearer token and
// injects the authenticated user's id into the request context under
// "user_id".  A missing header and an invalid token are both rejected
// with the not-authenticated response code; the two cases keep
// distinct messages.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return response.Error(c, response.NotAuthenticated, "Missing auth token")
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			userID, err := utils.ParseToken(secret, raw)
			if err != nil {
				return response.Error(c, response.NotAuthenticated, "Invalid auth token provided")
			}
			c.Set("user_id", userID)
			return next(c)
		}
	}
}

// UserID extracts the authenticated user id stored by JWTAuth.
func UserID(c echo.Context) (uint64, bool) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, true
	case float64:
		return uint64(t), true
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

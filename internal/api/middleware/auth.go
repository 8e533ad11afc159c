package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/abodeconnect/marketplace-api/internal/core/domain"
)

// TokenCookie is the cookie carrying the session token.
const TokenCookie = "access_token"

const userIDKey = "user_id"

// TokenVerifier resolves a session token to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Auth verifies the session token and stores the caller's user id in the
// context. The token is read from the access_token cookie first, then from a
// bearer Authorization header.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := verifier.Verify(extractToken(c))
			if err != nil {
				return err
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the id stored by Auth, or "" on unauthenticated routes.
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// RequireSelf lets the request through only when the authenticated caller is
// the user named by the path parameter param. It must run after Auth.
func RequireSelf(param, message string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if caller := UserID(c); caller == "" || caller != c.Param(param) {
				return domain.Forbidden(message)
			}
			return next(c)
		}
	}
}

package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/abodeconnect/marketplace-api/internal/api/middleware"
	"github.com/abodeconnect/marketplace-api/internal/core/domain"
)

// callerID returns the user id injected by the Auth middleware. An empty id
// means the route was mounted without Auth.
func callerID(c echo.Context) (string, error) {
	id := middleware.UserID(c)
	if id == "" {
		return "", domain.Unauthorized(domain.MsgNoToken)
	}
	return id, nil
}

func bindJSON(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return domain.Validation("Invalid request payload.")
	}
	return nil
}

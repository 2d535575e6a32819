package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trailmate/trailmate-api/internal/api/middleware"
)

// ctxUserID returns the user id stored by the Auth middleware. A missing id
// means the route was mounted without the middleware.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.UserIDKey).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "No token, authorization denied")
	}
	return id, nil
}

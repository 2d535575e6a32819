package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trailmate/trailmate-api/internal/core/domain"
	"github.com/trailmate/trailmate-api/internal/core/ports"
)

// UserIDKey is the echo context key holding the authenticated user id.
const UserIDKey = "user_id"

// DefaultTokenHeader is the request header carrying the token.
const DefaultTokenHeader = "x-auth-token"

// Auth verifies the token found in header, or in an "Authorization: Bearer"
// header when header is absent, and stores the user id under UserIDKey.
func Auth(tokens ports.TokenService, header string) echo.MiddlewareFunc {
	if header == "" {
		header = DefaultTokenHeader
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := tokens.Verify(tokenFrom(c.Request(), header))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, tokenMessage(err)).SetInternal(err)
			}

			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

func tokenFrom(r *http.Request, header string) string {
	if tok := strings.TrimSpace(r.Header.Get(header)); tok != "" {
		return tok
	}

	parts := strings.SplitN(r.Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func tokenMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenMissing):
		return "No token, authorization denied"
	case errors.Is(err, domain.ErrTokenExpired):
		return "Token has expired"
	default:
		return "Token is not valid"
	}
}

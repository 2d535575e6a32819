package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/trailmate/trailmate-api/internal/api/handler"
	"github.com/trailmate/trailmate-api/internal/core/domain"
)

// messageResponse is the envelope of single-message errors.
type messageResponse struct {
	Msg string `json:"msg"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that renders:
//   - validation failures as 400 {"errors": [...]};
//   - known domain errors and echo errors as {"msg": "..."};
//   - anything else as a logged 500 "Server Error" in plain text.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err)
		if body != nil {
			_ = c.JSON(code, body)
			return
		}

		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Msg("unhandled error")
		_ = c.String(http.StatusInternalServerError, "Server Error")
	}
}

// resolveError maps err to a status and body. A nil body means err is
// unexpected.
func resolveError(err error) (int, any) {
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return he.Code, messageResponse{Msg: msg}
		}
		return he.Code, messageResponse{Msg: fmt.Sprint(he.Message)}
	}

	switch {
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, handler.NewValidationError(handler.FieldError{Msg: "User already exists"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, handler.NewValidationError(handler.FieldError{Msg: "Invalid Credentials"})
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, messageResponse{Msg: "User not found"}
	case errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound, messageResponse{Msg: "Post not found"}
	case errors.Is(err, domain.ErrCommentNotFound):
		return http.StatusNotFound, messageResponse{Msg: "Comment does not exist"}
	case errors.Is(err, domain.ErrNotAuthorized):
		return http.StatusUnauthorized, messageResponse{Msg: "User not authorized"}
	case errors.Is(err, domain.ErrAlreadyLiked):
		return http.StatusBadRequest, messageResponse{Msg: "Post already liked"}
	case errors.Is(err, domain.ErrNotLiked):
		return http.StatusBadRequest, messageResponse{Msg: "Post has not yet been liked"}
	case errors.Is(err, domain.ErrTokenMissing):
		return http.StatusUnauthorized, messageResponse{Msg: "No token, authorization denied"}
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, messageResponse{Msg: "Token has expired"}
	case errors.Is(err, domain.ErrTokenMalformed):
		return http.StatusUnauthorized, messageResponse{Msg: "Token is not valid"}
	}

	return http.StatusInternalServerError, nil
}

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/trailmate/trailmate-api/internal/api/handler"
	"github.com/trailmate/trailmate-api/internal/core/domain"
)

func render(err error) *httptest.ResponseRecorder {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestErrorHandler_Messages(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.ErrPostNotFound, http.StatusNotFound, "Post not found"},
		{fmt.Errorf("find post: %w", domain.ErrPostNotFound), http.StatusNotFound, "Post not found"},
		{domain.ErrCommentNotFound, http.StatusNotFound, "Comment does not exist"},
		{domain.ErrNotAuthorized, http.StatusUnauthorized, "User not authorized"},
		{domain.ErrAlreadyLiked, http.StatusBadRequest, "Post already liked"},
		{domain.ErrNotLiked, http.StatusBadRequest, "Post has not yet been liked"},
		{domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{domain.ErrTokenExpired, http.StatusUnauthorized, "Token has expired"},
		{echo.NewHTTPError(http.StatusUnauthorized, "Token is not valid"), http.StatusUnauthorized, "Token is not valid"},
		{echo.ErrNotFound, http.StatusNotFound, "Not Found"},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := render(tc.err)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body["msg"] != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, body["msg"])
			}
		})
	}
}

func TestErrorHandler_ErrorLists(t *testing.T) {
	cases := []struct {
		err error
		msg string
	}{
		{domain.ErrUserExists, "User already exists"},
		{domain.ErrInvalidCredentials, "Invalid Credentials"},
		{handler.NewValidationError(handler.FieldError{Msg: "Text is required", Param: "text", Location: "body", Value: ""}), "Text is required"},
	}

	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			rec := render(tc.err)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			var body struct {
				Errors []map[string]any `json:"errors"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if len(body.Errors) != 1 || body.Errors[0]["msg"] != tc.msg {
				t.Fatalf("unexpected body %s", rec.Body.String())
			}
		})
	}
}

func TestErrorHandler_UnexpectedIsPlainText(t *testing.T) {
	rec := render(errors.New("mongo: connection reset"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if rec.Body.String() != "Server Error" {
		t.Fatalf("expected plain Server Error, got %q", rec.Body.String())
	}
}

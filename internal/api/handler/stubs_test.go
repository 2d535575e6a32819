package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/trailmate/trailmate-api/internal/api/middleware"
	"github.com/trailmate/trailmate-api/internal/core/domain"
	"github.com/trailmate/trailmate-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (string, error)
	loginFn    func(ctx context.Context, email, password string) (string, error)
	meFn       func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (string, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

// stubPostService fails the test on any call without a matching func.
type stubPostService struct {
	t      *testing.T
	schema domain.PostSchema

	createFn        func(ctx context.Context, userID string, fields domain.Fields) (*domain.Post, error)
	listFn          func(ctx context.Context) ([]*domain.Post, error)
	getFn           func(ctx context.Context, id string) (*domain.Post, error)
	deleteFn        func(ctx context.Context, id, userID string) error
	likeFn          func(ctx context.Context, id, userID string) ([]domain.Like, error)
	unlikeFn        func(ctx context.Context, id, userID string) ([]domain.Like, error)
	addCommentFn    func(ctx context.Context, id, userID, text string) ([]domain.Comment, error)
	deleteCommentFn func(ctx context.Context, id, commentID, userID string) ([]domain.Comment, error)
}

func (s *stubPostService) Schema() domain.PostSchema { return s.schema }

func (s *stubPostService) Create(ctx context.Context, userID string, fields domain.Fields) (*domain.Post, error) {
	if s.createFn == nil {
		s.t.Fatal("unexpected Create")
	}
	return s.createFn(ctx, userID, fields)
}

func (s *stubPostService) List(ctx context.Context) ([]*domain.Post, error) {
	if s.listFn == nil {
		s.t.Fatal("unexpected List")
	}
	return s.listFn(ctx)
}

func (s *stubPostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	if s.getFn == nil {
		s.t.Fatal("unexpected Get")
	}
	return s.getFn(ctx, id)
}

func (s *stubPostService) Delete(ctx context.Context, id, userID string) error {
	if s.deleteFn == nil {
		s.t.Fatal("unexpected Delete")
	}
	return s.deleteFn(ctx, id, userID)
}

func (s *stubPostService) Like(ctx context.Context, id, userID string) ([]domain.Like, error) {
	if s.likeFn == nil {
		s.t.Fatal("unexpected Like")
	}
	return s.likeFn(ctx, id, userID)
}

func (s *stubPostService) Unlike(ctx context.Context, id, userID string) ([]domain.Like, error) {
	if s.unlikeFn == nil {
		s.t.Fatal("unexpected Unlike")
	}
	return s.unlikeFn(ctx, id, userID)
}

func (s *stubPostService) AddComment(ctx context.Context, id, userID, text string) ([]domain.Comment, error) {
	if s.addCommentFn == nil {
		s.t.Fatal("unexpected AddComment")
	}
	return s.addCommentFn(ctx, id, userID, text)
}

func (s *stubPostService) DeleteComment(ctx context.Context, id, commentID, userID string) ([]domain.Comment, error) {
	if s.deleteCommentFn == nil {
		s.t.Fatal("unexpected DeleteComment")
	}
	return s.deleteCommentFn(ctx, id, commentID, userID)
}

// newContext builds an echo context with the validator installed. A non-empty
// userID is stored the way the Auth middleware does.
func newContext(method, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/", r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set(middleware.UserIDKey, userID)
	}
	return c, rec
}

func withParams(c echo.Context, kv ...string) {
	var names, values []string
	for i := 0; i+1 < len(kv); i += 2 {
		names = append(names, kv[i])
		values = append(values, kv[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
}

func requireStatus(t *testing.T, err error, want int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	if he.Code != want {
		t.Fatalf("expected status %d, got %d", want, he.Code)
	}
}


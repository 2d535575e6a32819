package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/trailmate/trailmate-api/internal/core/domain"
)

func newPostHandler(s *stubPostService) *PostHandler {
	return NewPostHandler(s, NewValidator())
}

func TestPostHandler_Create(t *testing.T) {
	stub := &stubPostService{
		t:      t,
		schema: domain.TrailPostSchema,
		createFn: func(ctx context.Context, userID string, fields domain.Fields) (*domain.Post, error) {
			if userID != "u1" {
				t.Fatalf("expected caller u1, got %s", userID)
			}
			if fields["trailLength"] != 12.5 {
				t.Fatalf("expected trailLength parsed to a number, got %#v", fields["trailLength"])
			}
			if _, ok := fields["likes"]; ok {
				t.Fatal("unknown keys must be dropped")
			}
			return &domain.Post{ID: "p1", User: userID, Fields: fields, Name: "Alice", Date: time.Now()}, nil
		},
	}
	body := `{"trailName":"Ridge","location":"Alps","description":"steep","trailLength":"12.5","likes":[{"user":"x"}]}`
	c, rec := newContext(http.MethodPost, body, "u1")

	if err := newPostHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["_id"] != "p1" || resp["trailName"] != "Ridge" || resp["name"] != "Alice" {
		t.Errorf("unexpected post payload: %v", resp)
	}
}

func TestPostHandler_Create_Validation(t *testing.T) {
	stub := &stubPostService{t: t, schema: domain.TrailPostSchema}
	body := `{"trailName":"Ridge","location":"","trailLength":"long"}`
	c, _ := newContext(http.MethodPost, body, "u1")

	err := newPostHandler(stub).Create(c)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{"Location is required", "Description is required", "Trail length must be a number"}
	if len(ve.Errors) != len(want) {
		t.Fatalf("expected %d errors, got %+v", len(want), ve.Errors)
	}
	for i, msg := range want {
		if ve.Errors[i].Msg != msg {
			t.Errorf("error %d: want %q, got %q", i, msg, ve.Errors[i].Msg)
		}
	}
}

func TestPostHandler_List_EmptyIsArray(t *testing.T) {
	stub := &stubPostService{
		t:      t,
		schema: domain.EquipmentPostSchema,
		listFn: func(ctx context.Context) ([]*domain.Post, error) { return nil, nil },
	}
	c, rec := newContext(http.MethodGet, "", "u1")

	if err := newPostHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestPostHandler_Get_NotFound(t *testing.T) {
	stub := &stubPostService{
		t:      t,
		schema: domain.EquipmentPostSchema,
		getFn: func(ctx context.Context, id string) (*domain.Post, error) {
			if id != "missing" {
				t.Fatalf("unexpected id %q", id)
			}
			return nil, domain.ErrPostNotFound
		},
	}
	c, _ := newContext(http.MethodGet, "", "u1")
	withParams(c, "id", "missing")

	if err := newPostHandler(stub).Get(c); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostHandler_Delete(t *testing.T) {
	stub := &stubPostService{
		t:      t,
		schema: domain.EquipmentPostSchema,
		deleteFn: func(ctx context.Context, id, userID string) error {
			if id != "p1" || userID != "u1" {
				t.Fatalf("unexpected args %s %s", id, userID)
			}
			return nil
		},
	}
	c, rec := newContext(http.MethodDelete, "", "u1")
	withParams(c, "id", "p1")

	if err := newPostHandler(stub).Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["msg"] != "Post removed" {
		t.Fatalf("unexpected response %v", resp)
	}
}

func TestPostHandler_LikeAndUnlike(t *testing.T) {
	stub := &stubPostService{
		t:      t,
		schema: domain.EquipmentPostSchema,
		likeFn: func(ctx context.Context, id, userID string) ([]domain.Like, error) {
			return []domain.Like{{ID: "l1", User: userID}}, nil
		},
		unlikeFn: func(ctx context.Context, id, userID string) ([]domain.Like, error) {
			return nil, domain.ErrNotLiked
		},
	}
	h := newPostHandler(stub)

	c, rec := newContext(http.MethodPut, "", "u1")
	withParams(c, "id", "p1")
	if err := h.Like(c); err != nil {
		t.Fatalf("like: %v", err)
	}
	var likes []domain.Like
	if err := json.Unmarshal(rec.Body.Bytes(), &likes); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(likes) != 1 || likes[0].User != "u1" {
		t.Fatalf("unexpected likes %+v", likes)
	}

	c, _ = newContext(http.MethodPut, "", "u1")
	withParams(c, "id", "p1")
	if err := h.Unlike(c); !errors.Is(err, domain.ErrNotLiked) {
		t.Fatalf("expected ErrNotLiked, got %v", err)
	}
}

func TestPostHandler_AddComment(t *testing.T) {
	stub := &stubPostService{
		t:      t,
		schema: domain.EquipmentPostSchema,
		addCommentFn: func(ctx context.Context, id, userID, text string) ([]domain.Comment, error) {
			if id != "p1" || userID != "u1" || text != "nice" {
				t.Fatalf("unexpected args %s %s %s", id, userID, text)
			}
			return []domain.Comment{{ID: "c1", User: userID, Text: text}}, nil
		},
	}
	c, rec := newContext(http.MethodPost, `{"text":"nice"}`, "u1")
	withParams(c, "id", "p1")

	if err := newPostHandler(stub).AddComment(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var comments []domain.Comment
	if err := json.Unmarshal(rec.Body.Bytes(), &comments); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(comments) != 1 || comments[0].ID != "c1" {
		t.Fatalf("unexpected comments %+v", comments)
	}
}

func TestPostHandler_AddComment_TextRequired(t *testing.T) {
	stub := &stubPostService{t: t, schema: domain.EquipmentPostSchema}
	c, _ := newContext(http.MethodPost, `{"text":""}`, "u1")
	withParams(c, "id", "p1")

	err := newPostHandler(stub).AddComment(c)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Errors) != 1 || ve.Errors[0].Msg != "Text is required" {
		t.Fatalf("unexpected errors %+v", ve.Errors)
	}
}

func TestPostHandler_DeleteComment(t *testing.T) {
	stub := &stubPostService{
		t:      t,
		schema: domain.EquipmentPostSchema,
		deleteCommentFn: func(ctx context.Context, id, commentID, userID string) ([]domain.Comment, error) {
			if id != "p1" || commentID != "c9" || userID != "u1" {
				t.Fatalf("unexpected args %s %s %s", id, commentID, userID)
			}
			return nil, domain.ErrCommentNotFound
		},
	}
	c, _ := newContext(http.MethodDelete, "", "u1")
	withParams(c, "id", "p1", "comment_id", "c9")

	if err := newPostHandler(stub).DeleteComment(c); !errors.Is(err, domain.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestPostHandler_RequiresUser(t *testing.T) {
	stub := &stubPostService{t: t, schema: domain.EquipmentPostSchema}
	c, _ := newContext(http.MethodPut, "", "")
	withParams(c, "id", "p1")

	requireStatus(t, newPostHandler(stub).Like(c), http.StatusUnauthorized)
}

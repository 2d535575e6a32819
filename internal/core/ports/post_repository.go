package ports

import (
	"context"

	"github.com/trailmate/trailmate-api/internal/core/domain"
)

// PostRepository persists the posts of a single kind. Lookups by an id that
// does not exist, or is not a well-formed identifier, return
// domain.ErrPostNotFound.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// List returns every post, newest first.
	List(ctx context.Context) ([]*domain.Post, error)
	Delete(ctx context.Context, id string) error
	// SaveLikes replaces the stored likes of post id.
	SaveLikes(ctx context.Context, id string, likes []domain.Like) error
	// SaveComments replaces the stored comments of post id.
	SaveComments(ctx context.Context, id string, comments []domain.Comment) error
}

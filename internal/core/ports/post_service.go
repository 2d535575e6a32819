package ports

import (
	"context"

	"github.com/trailmate/trailmate-api/internal/core/domain"
)

// PostService defines the use cases shared by every post kind. The caller's
// user id comes from the verified token.
type PostService interface {
	Schema() domain.PostSchema
	Create(ctx context.Context, userID string, fields domain.Fields) (*domain.Post, error)
	List(ctx context.Context) ([]*domain.Post, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	Delete(ctx context.Context, id, userID string) error
	Like(ctx context.Context, id, userID string) ([]domain.Like, error)
	Unlike(ctx context.Context, id, userID string) ([]domain.Like, error)
	AddComment(ctx context.Context, id, userID, text string) ([]domain.Comment, error)
	DeleteComment(ctx context.Context, id, commentID, userID string) ([]domain.Comment, error)
}

package service

import (
	"context"
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/trailmate/trailmate-api/internal/api/metrics"
	"github.com/trailmate/trailmate-api/internal/core/domain"
	"github.com/trailmate/trailmate-api/internal/core/ports"
)

// Serializer runs fn after every earlier job submitted for the same key.
type Serializer interface {
	Do(ctx context.Context, key string, fn func(context.Context) error) error
}

// PostService implements ports.PostService for one post kind. Every kind uses
// the same code; the schema only names the kind and its collection.
type PostService struct {
	schema  domain.PostSchema
	posts   ports.PostRepository
	authors *AuthorLookup
	serial  Serializer
	log     zerolog.Logger

	now   func() time.Time
	newID func() string
}

func NewPostService(
	schema domain.PostSchema,
	posts ports.PostRepository,
	authors *AuthorLookup,
	serial Serializer,
	log zerolog.Logger,
) *PostService {
	return &PostService{
		schema:  schema,
		posts:   posts,
		authors: authors,
		serial:  serial,
		log:     log.With().Str("kind", schema.Kind).Logger(),
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

func (s *PostService) Schema() domain.PostSchema {
	return s.schema
}

// Create stores a post owned by userID, stamped with the author's current
// name and avatar.
func (s *PostService) Create(ctx context.Context, userID string, fields domain.Fields) (*domain.Post, error) {
	author, err := s.authors.Author(ctx, userID)
	if err != nil {
		return nil, err
	}

	created, err := s.posts.Create(ctx, &domain.Post{
		User:     userID,
		Fields:   maps.Clone(fields),
		Name:     author.Name,
		Avatar:   author.Avatar,
		Likes:    []domain.Like{},
		Comments: []domain.Comment{},
		Date:     s.now(),
	})
	if err != nil {
		return nil, err
	}

	metrics.PostsCreatedTotal.WithLabelValues(s.schema.Kind).Inc()
	s.log.Info().Str("post_id", created.ID).Str("user_id", userID).Msg("post created")
	return created, nil
}

func (s *PostService) List(ctx context.Context) ([]*domain.Post, error) {
	return s.posts.List(ctx)
}

func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// Delete removes post id if userID owns it.
func (s *PostService) Delete(ctx context.Context, id, userID string) error {
	err := s.mutate(ctx, id, func(ctx context.Context, post *domain.Post) error {
		if post.User != userID {
			return domain.ErrNotAuthorized
		}
		return s.posts.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	metrics.PostsDeletedTotal.WithLabelValues(s.schema.Kind).Inc()
	s.log.Info().Str("post_id", id).Str("user_id", userID).Msg("post removed")
	return nil
}

func (s *PostService) Like(ctx context.Context, id, userID string) ([]domain.Like, error) {
	var likes []domain.Like
	err := s.mutate(ctx, id, func(ctx context.Context, post *domain.Post) error {
		if err := post.AddLike(domain.Like{ID: s.newID(), User: userID}); err != nil {
			return err
		}
		likes = post.Likes
		return s.posts.SaveLikes(ctx, id, post.Likes)
	})
	if err != nil {
		return nil, err
	}

	metrics.ReactionsTotal.WithLabelValues(s.schema.Kind, "like").Inc()
	return likes, nil
}

func (s *PostService) Unlike(ctx context.Context, id, userID string) ([]domain.Like, error) {
	var likes []domain.Like
	err := s.mutate(ctx, id, func(ctx context.Context, post *domain.Post) error {
		if err := post.RemoveLike(userID); err != nil {
			return err
		}
		likes = post.Likes
		return s.posts.SaveLikes(ctx, id, post.Likes)
	})
	if err != nil {
		return nil, err
	}

	metrics.ReactionsTotal.WithLabelValues(s.schema.Kind, "unlike").Inc()
	return likes, nil
}

// AddComment prepends a comment by userID and returns the post's comments.
func (s *PostService) AddComment(ctx context.Context, id, userID, text string) ([]domain.Comment, error) {
	author, err := s.authors.Author(ctx, userID)
	if err != nil {
		return nil, err
	}

	var comments []domain.Comment
	err = s.mutate(ctx, id, func(ctx context.Context, post *domain.Post) error {
		post.AddComment(domain.Comment{
			ID:     s.newID(),
			User:   userID,
			Text:   text,
			Name:   author.Name,
			Avatar: author.Avatar,
			Date:   s.now(),
		})
		comments = post.Comments
		return s.posts.SaveComments(ctx, id, post.Comments)
	})
	if err != nil {
		return nil, err
	}

	metrics.ReactionsTotal.WithLabelValues(s.schema.Kind, "comment").Inc()
	return comments, nil
}

// DeleteComment removes commentID from post id if userID wrote it.
func (s *PostService) DeleteComment(ctx context.Context, id, commentID, userID string) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := s.mutate(ctx, id, func(ctx context.Context, post *domain.Post) error {
		if err := post.RemoveComment(commentID, userID); err != nil {
			return err
		}
		comments = post.Comments
		return s.posts.SaveComments(ctx, id, post.Comments)
	})
	if err != nil {
		return nil, err
	}

	metrics.ReactionsTotal.WithLabelValues(s.schema.Kind, "uncomment").Inc()
	return comments, nil
}

// mutate loads post id and hands it to fn, serialised with every other
// mutation of the same post.
func (s *PostService) mutate(ctx context.Context, id string, fn func(context.Context, *domain.Post) error) error {
	return s.serial.Do(ctx, s.schema.Kind+"/"+id, func(ctx context.Context) error {
		post, err := s.posts.FindByID(ctx, id)
		if err != nil {
			return err
		}
		return fn(ctx, post)
	})
}

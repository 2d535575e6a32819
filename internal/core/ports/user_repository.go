package ports

import (
	"context"

	"github.com/trailmate/trailmate-api/internal/core/domain"
)

// UserRepository persists registered accounts.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no account uses email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID returns domain.ErrUserNotFound for unknown or malformed ids.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create stores user and returns it with its generated ID. A second account
	// with the same email yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// ProfileCache keeps author profiles close to the post handlers, which need
// a name and avatar on every post and comment they create.
type ProfileCache interface {
	// Get reports ok=false on a miss.
	Get(ctx context.Context, userID string) (author domain.Author, ok bool, err error)
	Set(ctx context.Context, author domain.Author) error
}

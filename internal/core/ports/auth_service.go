package ports

import (
	"context"

	"github.com/trailmate/trailmate-api/internal/core/domain"
)

// RegisterInput carries a validated registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type AuthService interface {
	// Register creates an account and returns a token for it.
	Register(ctx context.Context, in RegisterInput) (string, error)
	// Login exchanges credentials for a token.
	Login(ctx context.Context, email, password string) (string, error)
	// Me loads the account behind an authenticated request.
	Me(ctx context.Context, userID string) (*domain.User, error)
}

// TokenService issues and verifies the signed bearer tokens.
type TokenService interface {
	Issue(userID string) (string, error)
	// Verify returns the embedded user id, or one of domain.ErrTokenMissing,
	// domain.ErrTokenMalformed, domain.ErrTokenExpired.
	Verify(token string) (string, error)
}

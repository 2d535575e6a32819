package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/trailmate/trailmate-api/internal/api/metrics"
	"github.com/trailmate/trailmate-api/internal/core/domain"
	"github.com/trailmate/trailmate-api/internal/core/ports"
)

// AuthService implements registration, login and identity lookup.
type AuthService struct {
	repo       ports.UserRepository
	tokens     ports.TokenService
	bcryptCost int
	log        zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, bcryptCost int, log zerolog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{repo: repo, tokens: tokens, bcryptCost: bcryptCost, log: log}
}

// Register rejects an email that is already taken, stores the account with a
// bcrypt hash and returns a token, exactly like a successful login would.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, error) {
	_, err := s.repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		metrics.AuthAttemptsTotal.WithLabelValues("register", "rejected").Inc()
		return "", domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return "", err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Avatar:       domain.GravatarURL(in.Email),
		Date:         time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.AuthAttemptsTotal.WithLabelValues("register", "rejected").Inc()
		} else {
			metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		}
		return "", err
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return "", err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return token, nil
}

// Login returns a token when password matches the stored hash. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "rejected").Inc()
			return "", domain.ErrInvalidCredentials
		}
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "rejected").Inc()
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return "", err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return token, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

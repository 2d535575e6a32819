package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/trailmate/trailmate-api/internal/api/metrics"
	"github.com/trailmate/trailmate-api/internal/core/domain"
	"github.com/trailmate/trailmate-api/internal/core/ports"
)

// AuthorLookup resolves the name and avatar stamped onto new posts and
// comments, reading through an optional profile cache. Cache failures are
// logged and fall back to the user repository.
type AuthorLookup struct {
	users ports.UserRepository
	cache ports.ProfileCache
	log   zerolog.Logger
}

// NewAuthorLookup returns a lookup backed by users. cache may be nil.
func NewAuthorLookup(users ports.UserRepository, cache ports.ProfileCache, log zerolog.Logger) *AuthorLookup {
	return &AuthorLookup{users: users, cache: cache, log: log}
}

func (a *AuthorLookup) Author(ctx context.Context, userID string) (domain.Author, error) {
	if a.cache != nil {
		author, ok, err := a.cache.Get(ctx, userID)
		switch {
		case err != nil:
			metrics.ProfileCacheTotal.WithLabelValues("error").Inc()
			a.log.Warn().Err(err).Str("user_id", userID).Msg("profile cache read failed")
		case ok:
			metrics.ProfileCacheTotal.WithLabelValues("hit").Inc()
			return author, nil
		default:
			metrics.ProfileCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		return domain.Author{}, err
	}
	author := user.Author()

	if a.cache != nil {
		if err := a.cache.Set(ctx, author); err != nil {
			a.log.Warn().Err(err).Str("user_id", userID).Msg("profile cache write failed")
		}
	}
	return author, nil
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trailmate/trailmate-api/internal/core/domain"
)

const defaultProfileTTL = 10 * time.Minute

// ProfileCache keeps the name and avatar of post authors so that creating a
// post or a comment does not always read the users collection.
// Key format: profile:<user_id>
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache wraps client. A non-positive ttl falls back to ten minutes.
func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = defaultProfileTTL
	}
	return &ProfileCache{client: client, ttl: ttl}
}

// Get reports a miss with ok == false and a nil error.
func (c *ProfileCache) Get(ctx context.Context, userID string) (domain.Author, bool, error) {
	raw, err := c.client.Get(ctx, profileKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Author{}, false, nil
	}
	if err != nil {
		return domain.Author{}, false, fmt.Errorf("profile cache get: %w", err)
	}

	var a domain.Author
	if err := json.Unmarshal(raw, &a); err != nil {
		return domain.Author{}, false, fmt.Errorf("profile cache decode: %w", err)
	}
	return a, true, nil
}

func (c *ProfileCache) Set(ctx context.Context, a domain.Author) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}
	return c.client.Set(ctx, profileKey(a.ID), raw, c.ttl).Err()
}

func profileKey(userID string) string {
	return "profile:" + userID
}

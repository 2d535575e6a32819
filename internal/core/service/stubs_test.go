package service

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/rs/zerolog"

	"github.com/trailmate/trailmate-api/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[string]*domain.User // by id
	createErr error
	findCalls int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.findCalls++
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) seed(id, name, avatar string) {
	r.users[id] = &domain.User{ID: id, Name: name, Email: id + "@example.com", Avatar: avatar}
}

// ---------------------------------------------------------------------------
// In-memory post repository
// ---------------------------------------------------------------------------

type stubPostRepo struct {
	posts   map[string]*domain.Post
	seq     int
	saveErr error
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func clonePost(p *domain.Post) *domain.Post {
	clone := *p
	clone.Likes = slices.Clone(p.Likes)
	clone.Comments = slices.Clone(p.Comments)
	return &clone
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.seq++
	stored := clonePost(p)
	stored.ID = fmt.Sprintf("post-%d", r.seq)
	r.posts[stored.ID] = stored
	return clonePost(stored), nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

// List mirrors the Mongo sort on date descending.
func (r *stubPostRepo) List(_ context.Context) ([]*domain.Post, error) {
	out := make([]*domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *stubPostRepo) SaveLikes(_ context.Context, id string, likes []domain.Like) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	p, ok := r.posts[id]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.Likes = slices.Clone(likes)
	return nil
}

func (r *stubPostRepo) SaveComments(_ context.Context, id string, comments []domain.Comment) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	p, ok := r.posts[id]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.Comments = slices.Clone(comments)
	return nil
}

// ---------------------------------------------------------------------------
// Serializer and cache stubs
// ---------------------------------------------------------------------------

// inlineSerializer runs jobs on the calling goroutine.
type inlineSerializer struct {
	keys []string
}

func (s *inlineSerializer) Do(ctx context.Context, key string, fn func(context.Context) error) error {
	s.keys = append(s.keys, key)
	return fn(ctx)
}

type stubProfileCache struct {
	entries map[string]domain.Author
	getErr  error
	sets    int
}

func newStubProfileCache() *stubProfileCache {
	return &stubProfileCache{entries: make(map[string]domain.Author)}
}

func (c *stubProfileCache) Get(_ context.Context, userID string) (domain.Author, bool, error) {
	if c.getErr != nil {
		return domain.Author{}, false, c.getErr
	}
	a, ok := c.entries[userID]
	return a, ok, nil
}

func (c *stubProfileCache) Set(_ context.Context, a domain.Author) error {
	c.sets++
	c.entries[a.ID] = a
	return nil
}

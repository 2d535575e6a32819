package domain

import (
	"encoding/json"
	"slices"
	"time"
)

// Fields holds the entity-specific attributes of a post, keyed by their JSON
// name (e.g. "company", "trailLength"). Their shape is described by a PostSchema.
type Fields map[string]any

// Like records that a user liked a post.
type Like struct {
	ID   string `json:"_id"`
	User string `json:"user"`
}

// Comment is a reply attached to a post. Name and Avatar are copied from the
// author when the comment is written.
type Comment struct {
	ID     string    `json:"_id"`
	User   string    `json:"user"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

// Post is the aggregate shared by every post kind. Likes and Comments are kept
// newest-first.
type Post struct {
	ID       string
	User     string
	Fields   Fields
	Name     string
	Avatar   string
	Likes    []Like
	Comments []Comment
	Date     time.Time
}

// MarshalJSON flattens Fields next to the common attributes so a post renders
// as a single document: {"_id", "user", "company", ..., "likes", "date"}.
func (p Post) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(p.Fields)+8)
	for k, v := range p.Fields {
		doc[k] = v
	}
	doc["_id"] = p.ID
	doc["user"] = p.User
	doc["name"] = p.Name
	doc["avatar"] = p.Avatar
	doc["likes"] = nonNil(p.Likes)
	doc["comments"] = nonNil(p.Comments)
	doc["date"] = p.Date
	return json.Marshal(doc)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// LikedBy reports whether userID is among the post's likes.
func (p *Post) LikedBy(userID string) bool {
	return slices.ContainsFunc(p.Likes, func(l Like) bool { return l.User == userID })
}

// AddLike prepends like. A user can like a post only once.
func (p *Post) AddLike(like Like) error {
	if p.LikedBy(like.User) {
		return ErrAlreadyLiked
	}
	p.Likes = slices.Insert(p.Likes, 0, like)
	return nil
}

// RemoveLike drops the first like recorded for userID.
func (p *Post) RemoveLike(userID string) error {
	i := slices.IndexFunc(p.Likes, func(l Like) bool { return l.User == userID })
	if i < 0 {
		return ErrNotLiked
	}
	p.Likes = slices.Delete(p.Likes, i, i+1)
	return nil
}

// AddComment prepends c.
func (p *Post) AddComment(c Comment) {
	p.Comments = slices.Insert(p.Comments, 0, c)
}

// RemoveComment deletes commentID on behalf of userID, who must have written it.
func (p *Post) RemoveComment(commentID, userID string) error {
	i := slices.IndexFunc(p.Comments, func(c Comment) bool { return c.ID == commentID })
	if i < 0 {
		return ErrCommentNotFound
	}
	if p.Comments[i].User != userID {
		return ErrNotAuthorized
	}
	p.Comments = slices.Delete(p.Comments, i, i+1)
	return nil
}

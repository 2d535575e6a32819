package mongo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trailmate/trailmate-api/internal/core/domain"
)

// postDocument is the stored shape of every post kind. The schema fields are
// inlined next to the common attributes.
type postDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	User     primitive.ObjectID `bson:"user"`
	Fields   bson.M             `bson:",inline"`
	Name     string             `bson:"name"`
	Avatar   string             `bson:"avatar"`
	Likes    []likeDocument     `bson:"likes"`
	Comments []commentDocument  `bson:"comments"`
	Date     time.Time          `bson:"date"`
}

type likeDocument struct {
	ID   string             `bson:"_id"`
	User primitive.ObjectID `bson:"user"`
}

type commentDocument struct {
	ID     string             `bson:"_id"`
	User   primitive.ObjectID `bson:"user"`
	Text   string             `bson:"text"`
	Name   string             `bson:"name"`
	Avatar string             `bson:"avatar"`
	Date   time.Time          `bson:"date"`
}

// newPostDocument keeps only the fields named by schema, so stray keys can
// never collide with the common attributes.
func newPostDocument(schema domain.PostSchema, p *domain.Post) (postDocument, error) {
	user, err := primitive.ObjectIDFromHex(p.User)
	if err != nil {
		return postDocument{}, fmt.Errorf("post owner %q: %w", p.User, err)
	}
	likes, err := toLikeDocuments(p.Likes)
	if err != nil {
		return postDocument{}, err
	}
	comments, err := toCommentDocuments(p.Comments)
	if err != nil {
		return postDocument{}, err
	}

	fields := make(bson.M, len(schema.Fields))
	for _, f := range schema.Fields {
		if v, ok := p.Fields[f.Name]; ok {
			fields[f.Name] = v
		}
	}

	return postDocument{
		User:     user,
		Fields:   fields,
		Name:     p.Name,
		Avatar:   p.Avatar,
		Likes:    likes,
		Comments: comments,
		Date:     p.Date,
	}, nil
}

func (d postDocument) toDomain(schema domain.PostSchema) *domain.Post {
	fields := make(domain.Fields, len(schema.Fields))
	for _, f := range schema.Fields {
		if v, ok := d.Fields[f.Name]; ok {
			fields[f.Name] = v
		}
	}

	likes := make([]domain.Like, len(d.Likes))
	for i, l := range d.Likes {
		likes[i] = domain.Like{ID: l.ID, User: l.User.Hex()}
	}
	comments := make([]domain.Comment, len(d.Comments))
	for i, c := range d.Comments {
		comments[i] = domain.Comment{
			ID:     c.ID,
			User:   c.User.Hex(),
			Text:   c.Text,
			Name:   c.Name,
			Avatar: c.Avatar,
			Date:   c.Date.UTC(),
		}
	}

	return &domain.Post{
		ID:       d.ID.Hex(),
		User:     d.User.Hex(),
		Fields:   fields,
		Name:     d.Name,
		Avatar:   d.Avatar,
		Likes:    likes,
		Comments: comments,
		Date:     d.Date.UTC(),
	}
}

func toLikeDocuments(likes []domain.Like) ([]likeDocument, error) {
	docs := make([]likeDocument, len(likes))
	for i, l := range likes {
		user, err := primitive.ObjectIDFromHex(l.User)
		if err != nil {
			return nil, fmt.Errorf("like user %q: %w", l.User, err)
		}
		docs[i] = likeDocument{ID: l.ID, User: user}
	}
	return docs, nil
}

func toCommentDocuments(comments []domain.Comment) ([]commentDocument, error) {
	docs := make([]commentDocument, len(comments))
	for i, c := range comments {
		user, err := primitive.ObjectIDFromHex(c.User)
		if err != nil {
			return nil, fmt.Errorf("comment user %q: %w", c.User, err)
		}
		docs[i] = commentDocument{
			ID:     c.ID,
			User:   user,
			Text:   c.Text,
			Name:   c.Name,
			Avatar: c.Avatar,
			Date:   c.Date,
		}
	}
	return docs, nil
}

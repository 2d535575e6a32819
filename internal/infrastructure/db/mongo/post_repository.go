package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trailmate/trailmate-api/internal/core/domain"
)

// PostRepository implements ports.PostRepository for the collection named by
// its schema. One instance exists per post kind.
type PostRepository struct {
	col    *mongo.Collection
	schema domain.PostSchema
}

func NewPostRepository(db *mongo.Database, schema domain.PostSchema) *PostRepository {
	return &PostRepository{col: db.Collection(schema.Collection), schema: schema}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := newPostDocument(r.schema, post)
	if err != nil {
		return nil, err
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", r.schema.Kind, err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert %s: unexpected id type %T", r.schema.Kind, res.InsertedID)
	}
	doc.ID = id
	return doc.toDomain(r.schema), nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc postDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find %s: %w", r.schema.Kind, err)
	}
	return doc.toDomain(r.schema), nil
}

// List returns every post sorted by date, newest first.
func (r *PostRepository) List(ctx context.Context) ([]*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, listOptions())
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.schema.Kind, err)
	}
	defer cur.Close(ctx)

	var docs []postDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list %s: decode: %w", r.schema.Kind, err)
	}

	posts := make([]*domain.Post, len(docs))
	for i, d := range docs {
		posts[i] = d.toDomain(r.schema)
	}
	return posts, nil
}

// listOptions orders posts by date, newest first.
func listOptions() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.schema.Kind, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) SaveLikes(ctx context.Context, id string, likes []domain.Like) error {
	docs, err := toLikeDocuments(likes)
	if err != nil {
		return err
	}
	return r.set(ctx, id, "likes", docs)
}

func (r *PostRepository) SaveComments(ctx context.Context, id string, comments []domain.Comment) error {
	docs, err := toCommentDocuments(comments)
	if err != nil {
		return err
	}
	return r.set(ctx, id, "comments", docs)
}

func (r *PostRepository) set(ctx context.Context, id, field string, value any) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPostNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("update %s %s: %w", r.schema.Kind, field, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// EnsureIndexes creates the index backing the newest-first listing.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
	})
	return err
}

package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/trailmate/trailmate-api/internal/core/domain"
)

func TestPostDocument_KeepsOnlySchemaFields(t *testing.T) {
	owner := primitive.NewObjectID().Hex()
	post := &domain.Post{
		User: owner,
		Fields: domain.Fields{
			"trailName":   "Ridge",
			"trailLength": 12.5,
			"name":        "spoofed",
			"_id":         "spoofed",
		},
		Name: "Olive",
		Date: time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC),
	}

	doc, err := newPostDocument(domain.TrailPostSchema, post)
	if err != nil {
		t.Fatalf("newPostDocument: %v", err)
	}
	if len(doc.Fields) != 2 {
		t.Fatalf("expected 2 inlined fields, got %v", doc.Fields)
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var stored bson.M
	if err := bson.Unmarshal(raw, &stored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if stored["trailName"] != "Ridge" || stored["name"] != "Olive" {
		t.Errorf("unexpected stored document: %v", stored)
	}
	if _, ok := stored["_id"]; ok {
		t.Errorf("_id must be left to the server on insert, got %v", stored["_id"])
	}
}

func TestPostDocument_RoundTrip(t *testing.T) {
	owner := primitive.NewObjectID()
	liker := primitive.NewObjectID()
	date := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

	raw, err := bson.Marshal(bson.M{
		"_id":           primitive.NewObjectID(),
		"user":          owner,
		"company":       "Acme",
		"equipmentType": "Drill",
		"equipmentName": "D100",
		"review":        "Good",
		"name":          "Olive",
		"avatar":        "//avatar",
		"likes":         bson.A{bson.M{"_id": "l1", "user": liker}},
		"comments": bson.A{bson.M{
			"_id": "c1", "user": liker, "text": "nice", "name": "Oscar", "avatar": "//o", "date": date,
		}},
		"date": date,
		"__v":  int32(0),
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc postDocument
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	post := doc.toDomain(domain.EquipmentPostSchema)

	if post.User != owner.Hex() {
		t.Errorf("user: want %s, got %s", owner.Hex(), post.User)
	}
	if post.Fields["company"] != "Acme" || post.Fields["review"] != "Good" {
		t.Errorf("unexpected fields: %v", post.Fields)
	}
	if _, ok := post.Fields["__v"]; ok {
		t.Error("unknown keys must not leak into fields")
	}
	if len(post.Likes) != 1 || post.Likes[0].User != liker.Hex() {
		t.Errorf("unexpected likes: %+v", post.Likes)
	}
	if len(post.Comments) != 1 || post.Comments[0].Text != "nice" || !post.Comments[0].Date.Equal(date) {
		t.Errorf("unexpected comments: %+v", post.Comments)
	}
}

func TestLikeDocuments_RejectMalformedUser(t *testing.T) {
	if _, err := toLikeDocuments([]domain.Like{{ID: "l1", User: "not-an-object-id"}}); err == nil {
		t.Fatal("expected error for malformed user id")
	}
}

func TestListOptions_SortsByDateDescending(t *testing.T) {
	sort, ok := listOptions().Sort.(bson.D)
	if !ok {
		t.Fatalf("expected bson.D sort, got %T", listOptions().Sort)
	}
	want := bson.D{{Key: "date", Value: -1}}
	if len(sort) != 1 || sort[0].Key != want[0].Key || sort[0].Value != want[0].Value {
		t.Fatalf("want sort %v, got %v", want, sort)
	}
}

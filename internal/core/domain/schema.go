package domain

// FieldType is the storage type of a post field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldNumber
)

// FieldSpec describes one entity-specific field and the message shown when it
// fails validation.
type FieldSpec struct {
	Name    string
	Type    FieldType
	Message string
}

// PostSchema describes a post kind. Handlers, services and repositories are
// shared between kinds; only the schema differs.
type PostSchema struct {
	// Kind is the singular entity name used in logs and metrics.
	Kind string
	// Collection is the Mongo collection holding the documents.
	Collection string
	// Route is the path segment under /api.
	Route  string
	Fields []FieldSpec
}

var EquipmentPostSchema = PostSchema{
	Kind:       "equipmentPost",
	Collection: "equipmentposts",
	Route:      "equipmentPosts",
	Fields: []FieldSpec{
		{Name: "company", Type: FieldText, Message: "Company is required"},
		{Name: "equipmentType", Type: FieldText, Message: "Equipment type is required"},
		{Name: "equipmentName", Type: FieldText, Message: "Equipment name is required"},
		{Name: "review", Type: FieldText, Message: "Review is required"},
	},
}

var TrailPostSchema = PostSchema{
	Kind:       "trailPost",
	Collection: "trailposts",
	Route:      "trailPosts",
	Fields: []FieldSpec{
		{Name: "trailName", Type: FieldText, Message: "Trail name is required"},
		{Name: "location", Type: FieldText, Message: "Location is required"},
		{Name: "description", Type: FieldText, Message: "Description is required"},
		{Name: "trailLength", Type: FieldNumber, Message: "Trail length must be a number"},
	},
}

// PostSchemas lists every kind served by the API.
var PostSchemas = []PostSchema{EquipmentPostSchema, TrailPostSchema}

package model

import (
	"github.com/go-openapi/strfmt"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewSnippetID returns a fresh 24-character hex object id.
func NewSnippetID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidSnippetID reports whether id has the object id shape the stores issue.
func IsValidSnippetID(id string) bool {
	return strfmt.IsBSONObjectID(id)
}

// CanonicalSnippetID returns the lower-case hex form stores key on. It reports
// false when id is not an object id.
func CanonicalSnippetID(id string) (string, bool) {
	if !IsValidSnippetID(id) {
		return "", false
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return "", false
	}
	return oid.Hex(), true
}

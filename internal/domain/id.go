package domain

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ID identifies every persisted document and embedded entry. It is a MongoDB
// ObjectID and renders as 24 lowercase hexadecimal characters in JSON.
type ID = primitive.ObjectID

// NilID is the zero identifier.
var NilID = primitive.NilObjectID

var idPattern = regexp.MustCompile(`^[0-9a-f]{24}$`)

// NewID returns a freshly generated identifier.
func NewID() ID {
	return primitive.NewObjectID()
}

// IsValidID reports whether s has the identifier shape.
func IsValidID(s string) bool {
	return idPattern.MatchString(s)
}

// ParseID parses a 24 character lowercase hex string. Upper-case hex is
// rejected even though the driver would accept it.
func ParseID(s string) (ID, error) {
	if !IsValidID(s) {
		return NilID, ErrInvalidID
	}
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return NilID, ErrInvalidID
	}
	return id, nil
}

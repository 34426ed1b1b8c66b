package storage

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ParseID converts a canonical identifier string into an ObjectID.
// Only the 24-character lowercase hex form is accepted, so the string stored
// in a reference field and the string rebuilt from the parsed ID always match.
func ParseID(s string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(s)
	if err != nil || id.Hex() != s {
		return bson.NilObjectID, fmt.Errorf("%w: %q", ErrMalformedID, s)
	}
	return id, nil
}

// FormatID returns the canonical string form of id.
func FormatID(id bson.ObjectID) string {
	return id.Hex()
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CollectionUsers is the collection holding User documents.
const CollectionUsers = "user"

// User represents a member of the community.
//
// Users are created through the API and never mutated or deleted.
type User struct {
	// ID is assigned by the storage layer on insert.
	ID bson.ObjectID `bson:"_id,omitempty" json:"-"`

	// Name is the member's full name.
	Name string `bson:"name" json:"name" validate:"required"`

	// Email is the member's email address. Not unique.
	Email string `bson:"email" json:"email" validate:"required,email"`

	// AvatarURL is an optional profile image URL. Nil is stored as null.
	AvatarURL *string `bson:"avatar_url" json:"avatar_url"`

	// IsActive defaults to true when the body omits it.
	IsActive bool `bson:"is_active" json:"is_active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DecodeUser decodes and validates a User from a JSON request body.
func DecodeUser(data []byte) (*User, error) {
	obj, err := decodeObject(data)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:      obj.String("name"),
		Email:     obj.String("email"),
		AvatarURL: obj.OptionalString("avatar_url"),
		IsActive:  obj.Bool("is_active", true),
	}
	if err := obj.validate(user); err != nil {
		return nil, err
	}
	return user, nil
}

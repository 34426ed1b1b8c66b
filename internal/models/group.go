package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CollectionGroups is the collection holding Group documents.
const CollectionGroups = "group"

// Group represents a support group for healthy living, e.g. walking or
// weight loss. Messages are posted into groups.
type Group struct {
	// ID is assigned by the storage layer on insert.
	ID bson.ObjectID `bson:"_id,omitempty" json:"-"`

	// Name is the display name of the group (e.g., "Walkers").
	Name string `bson:"name" json:"name" validate:"required"`

	// Topic is the main focus of the group (e.g., "fitness").
	Topic string `bson:"topic" json:"topic" validate:"required"`

	// Description is an optional short description. Nil is stored as null.
	Description *string `bson:"description" json:"description"`

	// MembersCount is a stored counter. Nothing in this service increments it.
	MembersCount int `bson:"members_count" json:"members_count" validate:"min=0"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DecodeGroup decodes and validates a Group from a JSON request body.
func DecodeGroup(data []byte) (*Group, error) {
	obj, err := decodeObject(data)
	if err != nil {
		return nil, err
	}

	group := &Group{
		Name:         obj.String("name"),
		Topic:        obj.String("topic"),
		Description:  obj.OptionalString("description"),
		MembersCount: obj.Int("members_count", 0),
	}
	if err := obj.validate(group); err != nil {
		return nil, err
	}
	return group, nil
}

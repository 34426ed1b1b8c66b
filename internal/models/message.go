package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CollectionMessages is the collection holding Message documents.
const CollectionMessages = "message"

// Message represents a post inside a support group.
type Message struct {
	// ID is assigned by the storage layer on insert.
	ID bson.ObjectID `bson:"_id,omitempty" json:"-"`

	// GroupID is the canonical string form of the owning group's identifier.
	// Listing compares it string-to-string against the requested group.
	GroupID string `bson:"group_id" json:"group_id" validate:"required"`

	// AuthorName is the display name of the author.
	AuthorName string `bson:"author_name" json:"author_name" validate:"required"`

	Content string `bson:"content" json:"content" validate:"required"`

	// CreatedAt is assigned at creation and orders messages within a group.
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DecodeMessage decodes and validates a Message from a JSON request body.
func DecodeMessage(data []byte) (*Message, error) {
	obj, err := decodeObject(data)
	if err != nil {
		return nil, err
	}

	msg := &Message{
		GroupID:    obj.String("group_id"),
		AuthorName: obj.String("author_name"),
		Content:    obj.String("content"),
	}
	if err := obj.validate(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

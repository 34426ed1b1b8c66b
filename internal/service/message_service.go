package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mmynk/healthyliving/internal/models"
	"github.com/mmynk/healthyliving/internal/storage"
)

// messageOrder sorts a group's messages oldest first. _id breaks ties between
// messages created within the same millisecond.
var messageOrder = []storage.SortField{
	{Field: "created_at", Direction: storage.Ascending},
	{Field: "_id", Direction: storage.Ascending},
}

// MessageService posts and lists messages inside groups.
type MessageService struct {
	store storage.Gateway
}

// NewMessageService creates a new MessageService with the given storage backend.
func NewMessageService(store storage.Gateway) *MessageService {
	return &MessageService{store: store}
}

// PostMessage stores msg in the group named by groupID.
//
// The checks run in a fixed order: the body must name the same group as the
// path, the path must hold a canonical identifier, and the group must exist.
func (s *MessageService) PostMessage(ctx context.Context, groupID string, msg *models.Message) (string, error) {
	slog.Info("PostMessage request received",
		"group_id", groupID,
		"author_name", msg.AuthorName,
	)

	if msg.GroupID != groupID {
		slog.Warn("PostMessage rejected", "group_id", groupID, "body_group_id", msg.GroupID)
		return "", fmt.Errorf("%w: body has %q, path has %q", ErrMismatch, msg.GroupID, groupID)
	}

	gid, err := storage.ParseID(groupID)
	if err != nil {
		return "", err
	}

	// Verify group exists
	ok, err := s.store.Exists(ctx, models.CollectionGroups, gid)
	if err != nil {
		slog.Error("PostMessage failed - could not look up group", "group_id", groupID, "error", err)
		return "", fmt.Errorf("look up group: %w", err)
	}
	if !ok {
		slog.Warn("PostMessage failed - group not found", "group_id", groupID)
		return "", fmt.Errorf("%w: %s", ErrNotFound, groupID)
	}

	now := time.Now().UTC()
	msg.ID = bson.NilObjectID
	msg.CreatedAt = now
	msg.UpdatedAt = now

	id, err := s.store.Insert(ctx, models.CollectionMessages, msg)
	if err != nil {
		slog.Error("PostMessage failed", "group_id", groupID, "error", err)
		return "", fmt.Errorf("create message: %w", err)
	}

	slog.Info("Message posted", "group_id", groupID, "message_id", id)
	return id, nil
}

// ListMessages retrieves a group's messages, oldest first. The group itself
// is not required to exist; an unknown group simply has no messages.
func (s *MessageService) ListMessages(ctx context.Context, groupID string) ([]models.Message, error) {
	slog.Info("ListMessages request received", "group_id", groupID)

	gid, err := storage.ParseID(groupID)
	if err != nil {
		return nil, err
	}

	// group_id is stored as the canonical string, so the query uses the
	// string rebuilt from the parsed identifier.
	filter := bson.M{"group_id": storage.FormatID(gid)}

	var msgs []models.Message
	if err := s.store.Find(ctx, models.CollectionMessages, filter, messageOrder, &msgs); err != nil {
		slog.Error("ListMessages failed", "group_id", groupID, "error", err)
		return nil, fmt.Errorf("list messages: %w", err)
	}

	slog.Info("ListMessages successful", "group_id", groupID, "count", len(msgs))
	return msgs, nil
}

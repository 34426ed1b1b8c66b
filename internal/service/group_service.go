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

// GroupService manages support groups.
type GroupService struct {
	store storage.Gateway
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Gateway) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup persists a validated group and returns its identifier.
func (s *GroupService) CreateGroup(ctx context.Context, group *models.Group) (string, error) {
	slog.Info("CreateGroup request received",
		"name", group.Name,
		"topic", group.Topic,
	)

	now := time.Now().UTC()
	group.ID = bson.NilObjectID
	group.CreatedAt = now
	group.UpdatedAt = now

	id, err := s.store.Insert(ctx, models.CollectionGroups, group)
	if err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return "", fmt.Errorf("create group: %w", err)
	}

	slog.Info("Group created", "group_id", id)
	return id, nil
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	slog.Info("ListGroups request received")

	var groups []models.Group
	if err := s.store.Find(ctx, models.CollectionGroups, bson.M{}, nil, &groups); err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, fmt.Errorf("list groups: %w", err)
	}

	slog.Info("ListGroups successful", "count", len(groups))
	return groups, nil
}

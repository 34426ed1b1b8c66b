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

// UserService creates community members.
type UserService struct {
	store storage.Gateway
}

// NewUserService creates a new UserService with the given storage backend.
func NewUserService(store storage.Gateway) *UserService {
	return &UserService{store: store}
}

// CreateUser persists a validated user and returns its identifier.
func (s *UserService) CreateUser(ctx context.Context, user *models.User) (string, error) {
	slog.Info("CreateUser request received", "name", user.Name)

	now := time.Now().UTC()
	user.ID = bson.NilObjectID
	user.CreatedAt = now
	user.UpdatedAt = now

	id, err := s.store.Insert(ctx, models.CollectionUsers, user)
	if err != nil {
		slog.Error("CreateUser failed", "error", err)
		return "", fmt.Errorf("create user: %w", err)
	}

	slog.Info("User created", "user_id", id)
	return id, nil
}

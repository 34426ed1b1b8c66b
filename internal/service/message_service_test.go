package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/mock/gomock"

	"github.com/mmynk/healthyliving/internal/mocks"
	"github.com/mmynk/healthyliving/internal/models"
	"github.com/mmynk/healthyliving/internal/storage"
)

func TestPostMessage(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	groups := NewGroupService(store)
	svc := NewMessageService(store)

	groupID, err := groups.CreateGroup(ctx, &models.Group{Name: "Walkers", Topic: "fitness"})
	require.NoError(t, err)

	t.Run("should post into an existing group", func(t *testing.T) {
		req := require.New(t)

		id, err := svc.PostMessage(ctx, groupID, &models.Message{GroupID: groupID, AuthorName: "Alex", Content: "Hi"})
		req.NoError(err)
		req.Len(id, 24)

		msgs, err := svc.ListMessages(ctx, groupID)
		req.NoError(err)
		req.Len(msgs, 1)
		req.Equal("Alex", msgs[0].AuthorName)
		req.Equal(id, storage.FormatID(msgs[0].ID))
	})

	t.Run("should reject a body naming another group", func(t *testing.T) {
		_, err := svc.PostMessage(ctx, groupID, &models.Message{GroupID: "abc", AuthorName: "Alex", Content: "Hi"})
		require.ErrorIs(t, err, ErrMismatch)
	})

	t.Run("should reject a malformed group id", func(t *testing.T) {
		_, err := svc.PostMessage(ctx, "abc", &models.Message{GroupID: "abc", AuthorName: "Alex", Content: "Hi"})
		require.ErrorIs(t, err, storage.ErrMalformedID)
	})

	t.Run("should report a missing group", func(t *testing.T) {
		missing := bson.NewObjectID().Hex()
		_, err := svc.PostMessage(ctx, missing, &models.Message{GroupID: missing, AuthorName: "Alex", Content: "Hi"})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListMessages_Order(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := setupTestStore(t)
	groups := NewGroupService(store)
	svc := NewMessageService(store)

	g1, err := groups.CreateGroup(ctx, &models.Group{Name: "One", Topic: "t"})
	req.NoError(err)
	g2, err := groups.CreateGroup(ctx, &models.Group{Name: "Two", Topic: "t"})
	req.NoError(err)

	// Interleave posts across the two groups.
	var want []string
	for i, content := range []string{"a", "b", "c", "d", "e", "f"} {
		gid := g1
		if i%2 == 1 {
			gid = g2
		} else {
			want = append(want, content)
		}
		_, err := svc.PostMessage(ctx, gid, &models.Message{GroupID: gid, AuthorName: "Sam", Content: content})
		req.NoError(err)
	}

	msgs, err := svc.ListMessages(ctx, g1)
	req.NoError(err)

	got := make([]string, len(msgs))
	for i, m := range msgs {
		got[i] = m.Content
		req.Equal(g1, m.GroupID)
		if i > 0 {
			req.False(m.CreatedAt.Before(msgs[i-1].CreatedAt))
		}
	}
	req.Equal(want, got)
}

func TestListMessages_MalformedID(t *testing.T) {
	svc := NewMessageService(setupTestStore(t))

	_, err := svc.ListMessages(context.Background(), "not-an-id")
	require.ErrorIs(t, err, storage.ErrMalformedID)
}

func newMockService(t *testing.T) (*MessageService, *mocks.MockGateway) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockGateway(ctrl)
	return NewMessageService(mockStore), mockStore
}

func TestMessageService_StorageErrors(t *testing.T) {
	ctx := context.Background()
	groupID := bson.NewObjectID().Hex()

	t.Run("should check the mismatch before touching storage", func(t *testing.T) {
		// No expectations: any storage call fails the test.
		svc, _ := newMockService(t)

		_, err := svc.PostMessage(ctx, "000000000000000000000000", &models.Message{GroupID: "abc", AuthorName: "A", Content: "c"})
		require.ErrorIs(t, err, ErrMismatch)
	})

	t.Run("should surface unavailable storage on lookup", func(t *testing.T) {
		svc, mockStore := newMockService(t)
		mockStore.EXPECT().
			Exists(gomock.Any(), models.CollectionGroups, gomock.Any()).
			Return(false, storage.ErrUnavailable).
			Times(1)

		_, err := svc.PostMessage(ctx, groupID, &models.Message{GroupID: groupID, AuthorName: "A", Content: "c"})
		require.ErrorIs(t, err, storage.ErrUnavailable)
	})

	t.Run("should surface insert failures", func(t *testing.T) {
		svc, mockStore := newMockService(t)
		insertErr := errors.New("disk full")
		mockStore.EXPECT().Exists(gomock.Any(), models.CollectionGroups, gomock.Any()).Return(true, nil).Times(1)
		mockStore.EXPECT().Insert(gomock.Any(), models.CollectionMessages, gomock.Any()).Return("", insertErr).Times(1)

		_, err := svc.PostMessage(ctx, groupID, &models.Message{GroupID: groupID, AuthorName: "A", Content: "c"})
		require.ErrorIs(t, err, insertErr)
	})

	t.Run("should query by the canonical group string", func(t *testing.T) {
		svc, mockStore := newMockService(t)
		mockStore.EXPECT().
			Find(gomock.Any(), models.CollectionMessages, bson.M{"group_id": groupID}, messageOrder, gomock.Any()).
			Return(nil).
			Times(1)

		msgs, err := svc.ListMessages(ctx, groupID)
		require.NoError(t, err)
		require.Empty(t, msgs)
	})
}

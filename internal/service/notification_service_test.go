package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/chirp/internal/domain"
	"github.com/vedran77/chirp/pkg/apperror"
)

func TestNotificationService_NotifySelfIsNoop(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	ana := s.register(t, "ana")

	err := s.notifications.Notify(ctx, NotifyInput{
		RecipientID: ana.ID,
		Actor:       ana,
		Kind:        domain.NotificationFollow,
		Message:     "ana started following you",
	})
	require.NoError(t, err)

	list, err := s.notifications.List(ctx, ana.ID)
	require.NoError(t, err)
	assert.Empty(t, list.Notifications)
	assert.Zero(t, list.UnreadCount)
}

func TestNotificationService_ListCap(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	ana, bob := s.register(t, "ana"), s.register(t, "bob")

	for i := 0; i < 25; i++ {
		require.NoError(t, s.notifications.Notify(ctx, NotifyInput{
			RecipientID: ana.ID,
			Actor:       bob,
			Kind:        domain.NotificationFollow,
			Message:     "bob started following you",
		}))
	}

	list, err := s.notifications.List(ctx, ana.ID)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 20)
	assert.Equal(t, 25, list.UnreadCount)
}

func TestNotificationService_ReadState(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	ana, bob := s.register(t, "ana"), s.register(t, "bob")

	_, err := s.users.ToggleFollow(ctx, bob.ID, ana.ID)
	require.NoError(t, err)
	_, err = s.users.ToggleFollow(ctx, ana.ID, bob.ID)
	require.NoError(t, err)

	list, err := s.notifications.List(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	id := list.Notifications[0].ID

	t.Run("someone else's notification", func(t *testing.T) {
		err := s.notifications.MarkRead(ctx, bob.ID, id)
		assert.Equal(t, apperror.CodeNotFound, apperror.CodeOf(err))
	})

	t.Run("unknown notification", func(t *testing.T) {
		err := s.notifications.MarkRead(ctx, ana.ID, uuid.New())
		assert.Equal(t, apperror.CodeNotFound, apperror.CodeOf(err))
	})

	require.NoError(t, s.notifications.MarkRead(ctx, ana.ID, id))
	unread, err := s.notifications.UnreadCount(ctx, ana.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	updated, err := s.notifications.MarkAllRead(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	updated, err = s.notifications.MarkAllRead(ctx, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, updated)
}

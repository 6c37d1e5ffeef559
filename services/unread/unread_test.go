package unread

import (
	"context"
	"errors"
	"testing"

	"teamfeed/database/docstore"
	chatRepo "teamfeed/database/repository/chat"
	notificationRepo "teamfeed/database/repository/notification"
	userRepo "teamfeed/database/repository/user"
	"teamfeed/services/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chat(uid, sender string, isRead any) map[string]any {
	msg := map[string]any{"senderId": sender, "text": "hey"}
	if isRead != nil {
		msg["isRead"] = isRead
	}
	return map[string]any{"uid": uid, "lastMessage": msg}
}

func newService(s *docstore.MemoryStore) (*DefaultUnreadService, *notification.DefaultNotificationService) {
	notifications := &notification.DefaultNotificationService{
		Repo:   notificationRepo.NewStoreNotificationRepo(s),
		Users:  userRepo.NewStoreUserRepo(s),
		Logger: zap.NewNop(),
	}
	return &DefaultUnreadService{
		Notifications: notifications,
		Chats:         chatRepo.NewStoreChatRepo(s),
	}, notifications
}

func seed(s *docstore.MemoryStore) {
	s.Put("notification", "n1", map[string]any{"users": []any{map[string]any{"id": "u1", "read": false}}})
	s.Put("notification", "n2", map[string]any{"users": []any{map[string]any{"id": "u1"}}})
	s.Put("notification", "n3", map[string]any{"users": []any{map[string]any{"id": "u1", "read": true}}})
	s.Put("notification", "n4", map[string]any{"users": []any{map[string]any{"id": "u1", "deleted": true}}})

	s.Put("userChats", "bob", map[string]any{
		"bob_u1":   chat("u1", "bob", false),
		"bob_u1b":  chat("u1", "u1", false),
		"bob_u1c":  chat("u1", "bob", true),
		"bob_u1d":  chat("u1", "bob", nil),
		"bob_carl": chat("carl", "bob", false),
		"updated":  "2025-01-01",
	})
	s.Put("userChats", "dana", map[string]any{"dana_u1": chat("u1", "dana", false)})
}

func TestCounts(t *testing.T) {
	s := docstore.NewMemoryStore()
	seed(s)
	svc, notifications := newService(s)
	ctx := context.Background()

	counts, err := svc.Counts(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, counts.UnreadNotifications)
	assert.Equal(t, 2, counts.UnreadMessages)

	for _, unreadOnly := range []bool{false, true} {
		list, err := notifications.GetNotifications(ctx, "u1", unreadOnly)
		require.NoError(t, err)
		assert.Equal(t, counts.UnreadNotifications, list.Count)
	}
}

func TestCountsUnknownUser(t *testing.T) {
	s := docstore.NewMemoryStore()
	seed(s)
	svc, _ := newService(s)

	counts, err := svc.Counts(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, counts.UnreadNotifications)
	assert.Zero(t, counts.UnreadMessages)
}

func TestCountsFailsWhenEitherScanFails(t *testing.T) {
	for _, failing := range []string{"notification", "userChats"} {
		t.Run(failing, func(t *testing.T) {
			s := docstore.NewMemoryStore()
			seed(s)
			s.Intercept = func(op, collection string) error {
				if collection == failing {
					return errors.New("unavailable")
				}
				return nil
			}
			svc, _ := newService(s)

			counts, err := svc.Counts(context.Background(), "u1")
			assert.Error(t, err)
			assert.Nil(t, counts)
		})
	}
}

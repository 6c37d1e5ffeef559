package notification

import (
	"context"
	"fmt"
	"sort"

	notificationRepo "teamfeed/database/repository/notification"
	"teamfeed/models"

	"go.uber.org/zap"
)

// GetNotifications lists the notifications addressed to userID, newest
// first. Count is the number of unread ones whether or not unreadOnly
// narrows the list.
func (s *DefaultNotificationService) GetNotifications(ctx context.Context, userID string, unreadOnly bool) (*models.NotificationList, error) {
	all, err := s.Repo.List(ctx, notificationRepo.RecipientFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("GetNotifications: %w", err)
	}

	count := 0
	listed := make([]models.Notification, 0, len(all))
	for _, n := range all {
		entry, ok := n.Entry(userID)
		if !ok {
			continue
		}
		if !entry.Read {
			count++
		} else if unreadOnly {
			continue
		}
		listed = append(listed, n)
	}
	sort.SliceStable(listed, func(i, j int) bool {
		return listed[i].CreatedAt.After(listed[j].CreatedAt)
	})

	users := s.resolveUsers(ctx, listed)
	views := make([]models.NotificationView, len(listed))
	for i, n := range listed {
		enrichRecipients(n.Users, users)
		views[i] = models.NewNotificationView(n, models.AuthorOf(users[n.UserID]))
	}
	return &models.NotificationList{Count: count, Notifications: views}, nil
}

// CountUnread counts notifications whose non-deleted entry for userID is unread.
func (s *DefaultNotificationService) CountUnread(ctx context.Context, userID string) (int, error) {
	unread, err := s.Repo.List(ctx, notificationRepo.RecipientFilter{UserID: userID, UnreadOnly: true})
	if err != nil {
		return 0, fmt.Errorf("CountUnread: %w", err)
	}
	count := 0
	for _, n := range unread {
		if entry, ok := n.Entry(userID); ok && !entry.Read {
			count++
		}
	}
	return count, nil
}

// resolveUsers fetches every recipient and creator in one lookup. Failures
// are logged and leave display data unresolved.
func (s *DefaultNotificationService) resolveUsers(ctx context.Context, ns []models.Notification) map[string]*models.User {
	seen := make(map[string]bool)
	var ids []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, n := range ns {
		add(n.UserID)
		for _, r := range n.Users {
			add(r.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	users, err := s.Users.GetByIDs(ctx, ids)
	if err != nil {
		s.logger().Warn("recipient lookup failed", zap.Int("users", len(ids)), zap.Error(err))
		return nil
	}
	return users
}

func enrichRecipients(recipients []models.Recipient, users map[string]*models.User) {
	for i := range recipients {
		u, ok := users[recipients[i].ID]
		if !ok || u == nil {
			continue
		}
		if u.PhotoURL != "" {
			recipients[i].PhotoURL = u.PhotoURL
		}
		if recipients[i].DisplayName == "" {
			recipients[i].DisplayName = u.DisplayName
		}
	}
}

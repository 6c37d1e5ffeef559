package unread

import (
	"context"
	"fmt"

	chatRepo "teamfeed/database/repository/chat"
	"teamfeed/models"

	"golang.org/x/sync/errgroup"
)

// NotificationCounter counts a user's unread notifications.
type NotificationCounter interface {
	CountUnread(ctx context.Context, userID string) (int, error)
}

// UnreadService reports unread totals across notifications and chats.
type UnreadService interface {
	Counts(ctx context.Context, userID string) (*models.UnreadCounts, error)
}

// DefaultUnreadService is the production implementation.
type DefaultUnreadService struct {
	Notifications NotificationCounter
	Chats         chatRepo.ChatRepository
}

// Counts runs both scans concurrently. If either fails the whole call fails.
func (s *DefaultUnreadService) Counts(ctx context.Context, userID string) (*models.UnreadCounts, error) {
	var counts models.UnreadCounts
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.Notifications.CountUnread(gctx, userID)
		if err != nil {
			return err
		}
		counts.UnreadNotifications = n
		return nil
	})
	g.Go(func() error {
		n, err := s.unreadMessages(gctx, userID)
		if err != nil {
			return err
		}
		counts.UnreadMessages = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("Counts: %w", err)
	}
	return &counts, nil
}

func (s *DefaultUnreadService) unreadMessages(ctx context.Context, userID string) (int, error) {
	summaries, err := s.Chats.ListSummaries(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, summary := range summaries {
		for _, entry := range summary.Entries {
			if entry.UnreadFor(userID) {
				count++
			}
		}
	}
	return count, nil
}

package notification

import (
	"context"
	"errors"
	"fmt"

	"teamfeed/database/docstore"
	notificationRepo "teamfeed/database/repository/notification"
	"teamfeed/models"
)

// MarkAsRead flags userID's entry on one notification as read. Entries of
// other recipients are written back unchanged; nothing is written when the
// user has no unread entry.
func (s *DefaultNotificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	n, err := s.Repo.GetByID(ctx, notificationID)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("MarkAsRead: %w", err)
	}
	if !n.MarkRead(userID) {
		return nil
	}
	if err := s.Repo.UpdateRecipients(ctx, n); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("MarkAsRead: %w", err)
	}
	return nil
}

// MarkAllAsRead flags every unread entry of userID as read in one atomic
// batch and returns the number of notifications rewritten.
func (s *DefaultNotificationService) MarkAllAsRead(ctx context.Context, userID string) (int, error) {
	pending, err := s.Repo.List(ctx, notificationRepo.RecipientFilter{
		UserID:         userID,
		IncludeDeleted: true,
		UnreadOnly:     true,
	})
	if err != nil {
		return 0, fmt.Errorf("MarkAllAsRead: %w", err)
	}

	changed := make([]models.Notification, 0, len(pending))
	for i := range pending {
		if pending[i].MarkRead(userID) {
			changed = append(changed, pending[i])
		}
	}
	if len(changed) == 0 {
		return 0, nil
	}
	if err := s.Repo.UpdateRecipientsBatch(ctx, changed); err != nil {
		return 0, fmt.Errorf("MarkAllAsRead: %w", err)
	}
	return len(changed), nil
}

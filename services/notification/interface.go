package notification

import (
	"context"

	notificationRepo "teamfeed/database/repository/notification"
	userRepo "teamfeed/database/repository/user"
	"teamfeed/models"

	"go.uber.org/zap"
)

// NotificationService reads and updates per-user notification state.
type NotificationService interface {
	GetNotifications(ctx context.Context, userID string, unreadOnly bool) (*models.NotificationList, error)
	// MarkAsRead returns ErrNotFound when notificationID does not exist.
	MarkAsRead(ctx context.Context, userID, notificationID string) error
	// MarkAllAsRead returns how many notifications were rewritten.
	MarkAllAsRead(ctx context.Context, userID string) (int, error)
	CountUnread(ctx context.Context, userID string) (int, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo notificationRepo.NotificationRepository
	// Users resolves recipient and creator display data in one batch.
	Users  userRepo.UserRepository
	Logger *zap.Logger
}

func (s *DefaultNotificationService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

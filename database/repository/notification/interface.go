package notificationRepo

import (
	"context"

	"teamfeed/models"
)

// RecipientFilter selects notifications by one user's recipient entry.
type RecipientFilter struct {
	UserID string
	// IncludeDeleted keeps notifications whose entry for UserID is flagged deleted.
	IncludeDeleted bool
	// UnreadOnly keeps only notifications whose entry for UserID is not read.
	UnreadOnly bool
}

// NotificationRepository defines access to the notification collection.
type NotificationRepository interface {
	List(ctx context.Context, filter RecipientFilter) ([]models.Notification, error)
	// GetByID returns docstore.ErrNotFound when the notification does not exist.
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	// UpdateRecipients rewrites the users array of one notification.
	UpdateRecipients(ctx context.Context, n *models.Notification) error
	// UpdateRecipientsBatch rewrites the users arrays of several notifications
	// atomically.
	UpdateRecipientsBatch(ctx context.Context, ns []models.Notification) error
}

package notificationRepo

import (
	"context"
	"fmt"

	"teamfeed/database/docstore"
	"teamfeed/models"
)

// Collection holds notifications.
const Collection = "notification"

// StoreNotificationRepo implements NotificationRepository on a document store.
type StoreNotificationRepo struct {
	store docstore.Store
}

// NewStoreNotificationRepo creates a NotificationRepository.
func NewStoreNotificationRepo(store docstore.Store) *StoreNotificationRepo {
	return &StoreNotificationRepo{store: store}
}

func (f RecipientFilter) filters() []docstore.Filter {
	sub := []docstore.Filter{{Field: "id", Op: docstore.OpEqual, Value: f.UserID}}
	if !f.IncludeDeleted {
		sub = append(sub, docstore.Filter{Field: "deleted", Op: docstore.OpNotEqual, Value: true})
	}
	if f.UnreadOnly {
		sub = append(sub, docstore.Filter{Field: "read", Op: docstore.OpNotEqual, Value: true})
	}
	return []docstore.Filter{{Field: "users", Op: docstore.OpElemMatch, Value: sub}}
}

// List returns every notification matching filter in store order. Documents
// rejected by the filter are never decoded.
func (r *StoreNotificationRepo) List(ctx context.Context, filter RecipientFilter) ([]models.Notification, error) {
	native, local := docstore.Split(r.store, filter.filters())
	docs, err := r.store.Query(ctx, docstore.Query{Collection: Collection, Filters: native})
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}

	out := make([]models.Notification, 0, len(docs))
	for _, doc := range docs {
		if !docstore.MatchAll(doc.Data, local) {
			continue
		}
		n, err := decodeNotification(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	return out, nil
}

func (r *StoreNotificationRepo) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		return nil, err
	}
	return decodeNotification(doc)
}

func (r *StoreNotificationRepo) UpdateRecipients(ctx context.Context, n *models.Notification) error {
	return r.store.Update(ctx, recipientsWrite(n))
}

func (r *StoreNotificationRepo) UpdateRecipientsBatch(ctx context.Context, ns []models.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	writes := make([]docstore.Write, len(ns))
	for i := range ns {
		writes[i] = recipientsWrite(&ns[i])
	}
	if err := r.store.BatchUpdate(ctx, writes); err != nil {
		return fmt.Errorf("failed to update %d notifications: %w", len(ns), err)
	}
	return nil
}

func recipientsWrite(n *models.Notification) docstore.Write {
	return docstore.Write{
		Collection: Collection,
		ID:         n.ID,
		Fields:     map[string]any{"users": n.RecipientFields()},
	}
}

func decodeNotification(doc *docstore.Document) (*models.Notification, error) {
	var n models.Notification
	if err := docstore.Decode(Collection, doc, &n); err != nil {
		return nil, err
	}
	n.ID = doc.ID
	if raw, ok := doc.Data["users"].([]any); ok {
		n.RawUsers = raw
	}
	return &n, nil
}

package chatRepo

import (
	"context"
	"fmt"

	"teamfeed/database/docstore"
	"teamfeed/models"
)

// Collection holds per-user chat summaries.
const Collection = "userChats"

// ChatRepository defines read access to chat summaries.
type ChatRepository interface {
	ListSummaries(ctx context.Context) ([]models.ChatSummary, error)
}

// StoreChatRepo implements ChatRepository on a document store.
type StoreChatRepo struct {
	store docstore.Store
}

// NewStoreChatRepo creates a ChatRepository.
func NewStoreChatRepo(store docstore.Store) *StoreChatRepo {
	return &StoreChatRepo{store: store}
}

// ListSummaries scans the whole collection. Top-level values that are not
// objects are not conversations and are skipped.
func (r *StoreChatRepo) ListSummaries(ctx context.Context) ([]models.ChatSummary, error) {
	docs, err := r.store.Query(ctx, docstore.Query{Collection: Collection})
	if err != nil {
		return nil, fmt.Errorf("failed to scan chat summaries: %w", err)
	}

	out := make([]models.ChatSummary, 0, len(docs))
	for _, doc := range docs {
		summary := models.ChatSummary{ID: doc.ID, Entries: make(map[string]models.ChatEntry, len(doc.Data))}
		for key, raw := range doc.Data {
			obj, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			var entry models.ChatEntry
			if err := docstore.DecodeMap(Collection, doc.ID+"/"+key, obj, &entry); err != nil {
				return nil, err
			}
			summary.Entries[key] = entry
		}
		out = append(out, summary)
	}
	return out, nil
}

package userRepo

import (
	"context"
	"fmt"

	"teamfeed/database/docstore"
	"teamfeed/models"
)

// Collection holds user profiles.
const Collection = "users"

// StoreUserRepo implements UserRepository on a document store.
type StoreUserRepo struct {
	store docstore.Store
}

// NewStoreUserRepo creates a UserRepository backed by store.
func NewStoreUserRepo(store docstore.Store) *StoreUserRepo {
	return &StoreUserRepo{store: store}
}

func (r *StoreUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	doc, err := r.store.Get(ctx, Collection, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	return decodeUser(doc)
}

func (r *StoreUserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	users := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	docs, err := r.store.GetMany(ctx, Collection, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %d users: %w", len(ids), err)
	}
	for _, doc := range docs {
		u, err := decodeUser(doc)
		if err != nil {
			return nil, err
		}
		users[u.ID] = u
	}
	return users, nil
}

func decodeUser(doc *docstore.Document) (*models.User, error) {
	var u models.User
	if err := docstore.Decode(Collection, doc, &u); err != nil {
		return nil, err
	}
	u.ID = doc.ID
	return &u, nil
}

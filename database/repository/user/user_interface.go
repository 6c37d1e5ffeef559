package userRepo

import (
	"context"

	"teamfeed/models"
)

// UserRepository defines read access to user records.
type UserRepository interface {
	// GetByID returns docstore.ErrNotFound (wrapped) when the user does not exist.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByIDs fetches several users in one round trip, keyed by id.
	// Unknown ids are absent from the result.
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}

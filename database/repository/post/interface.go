package postRepo

import (
	"context"

	"teamfeed/models"
)

// PostRepository defines read access to blog posts.
type PostRepository interface {
	// LatestVisible returns up to limit non-deleted posts tagged for any of
	// teams, newest first.
	LatestVisible(ctx context.Context, teams []string, limit int) ([]models.Post, error)
}

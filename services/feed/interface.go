package feed

import (
	"context"

	"teamfeed/models"
)

// FeedService assembles the team-scoped post feed.
type FeedService interface {
	// LatestPosts returns the newest posts visible to userID with author
	// display data attached. An unknown user or one without teams gets an
	// empty feed.
	LatestPosts(ctx context.Context, userID string) ([]models.PostView, error)
}

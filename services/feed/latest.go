package feed

import (
	"context"
	"errors"
	"fmt"

	"teamfeed/database/docstore"
	postRepo "teamfeed/database/repository/post"
	userRepo "teamfeed/database/repository/user"
	"teamfeed/models"

	"go.uber.org/zap"
)

// DefaultPageSize is the number of posts in one feed page.
const DefaultPageSize = 5

// DefaultFeedService is the production implementation.
type DefaultFeedService struct {
	// Users resolves the requesting user and must read through to the store.
	Users userRepo.UserRepository
	// Authors resolves post authors and may be cached.
	Authors  userRepo.UserRepository
	Posts    postRepo.PostRepository
	PageSize int
	Logger   *zap.Logger
}

func (s *DefaultFeedService) pageSize() int {
	if s.PageSize > 0 {
		return s.PageSize
	}
	return DefaultPageSize
}

func (s *DefaultFeedService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

func (s *DefaultFeedService) LatestPosts(ctx context.Context, userID string) ([]models.PostView, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, docstore.ErrNotFound) {
		return []models.PostView{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("LatestPosts: %w", err)
	}

	teams := u.TeamIDs()
	if len(teams) == 0 {
		return []models.PostView{}, nil
	}

	posts, err := s.Posts.LatestVisible(ctx, teams, s.pageSize())
	if err != nil {
		return nil, fmt.Errorf("LatestPosts: %w", err)
	}

	authors := s.resolveAuthors(ctx, posts)
	views := make([]models.PostView, len(posts))
	for i, p := range posts {
		views[i] = models.NewPostView(p, models.AuthorOf(authors[p.UserID]))
	}
	return views, nil
}

// resolveAuthors looks every distinct author up once. A failed lookup leaves
// the map empty so callers fall back to default display data.
func (s *DefaultFeedService) resolveAuthors(ctx context.Context, posts []models.Post) map[string]*models.User {
	seen := make(map[string]bool, len(posts))
	var ids []string
	for _, p := range posts {
		if p.UserID == "" || seen[p.UserID] {
			continue
		}
		seen[p.UserID] = true
		ids = append(ids, p.UserID)
	}
	if len(ids) == 0 {
		return nil
	}

	authors, err := s.Authors.GetByIDs(ctx, ids)
	if err != nil {
		s.logger().Warn("author lookup failed, using defaults", zap.Strings("authorIds", ids), zap.Error(err))
		return nil
	}
	return authors
}

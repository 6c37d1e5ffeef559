package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"teamfeed/database/docstore"
	postRepo "teamfeed/database/repository/post"
	userRepo "teamfeed/database/repository/user"
	"teamfeed/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingUsers struct{}

func (failingUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	return nil, errors.New("profile backend down")
}

func (failingUsers) GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	return nil, errors.New("profile backend down")
}

var t0 = time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC)

func post(author string, minutes int, teams ...string) map[string]any {
	tags := make([]any, len(teams))
	for i, t := range teams {
		tags[i] = map[string]any{"label": t, "value": t}
	}
	return map[string]any{
		"messageTitle":   "update",
		"messageContent": "body",
		"createdAt":      t0.Add(time.Duration(minutes) * time.Minute),
		"isDeleted":      false,
		"userId":         author,
		"orgId":          "org-1",
		"teams":          tags,
	}
}

func newService(s *docstore.MemoryStore) *DefaultFeedService {
	users := userRepo.NewStoreUserRepo(s)
	return &DefaultFeedService{
		Users:   users,
		Authors: users,
		Posts:   postRepo.NewStorePostRepo(s, 4),
		Logger:  zap.NewNop(),
	}
}

func TestLatestPostsUserWithoutTeams(t *testing.T) {
	s := docstore.NewMemoryStore()
	s.Put("users", "u1", map[string]any{"displayName": "Ada", "teams": []any{}})
	s.Put("blogs", "p1", post("u2", 1, "ops"))

	posts, err := newService(s).LatestPosts(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestLatestPostsUnknownUser(t *testing.T) {
	s := docstore.NewMemoryStore()
	s.Put("blogs", "p1", post("u2", 1, "ops"))

	posts, err := newService(s).LatestPosts(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestLatestPostsOrderingAndAuthors(t *testing.T) {
	s := docstore.NewMemoryStore()
	s.Put("users", "reader", map[string]any{"teams": []any{map[string]any{"teamUid": "ops"}}})
	s.Put("users", "ada", map[string]any{"displayName": "Ada", "photoURL": "https://img/ada.png"})
	s.Put("blogs", "T1", post("ada", 1, "ops"))
	s.Put("blogs", "T3", post("ghost", 3, "ops"))
	s.Put("blogs", "T2", post("ada", 2, "design", "ops"))

	posts, err := newService(s).LatestPosts(context.Background(), "reader")
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, "T3", posts[0].ID)
	assert.Equal(t, "T2", posts[1].ID)
	assert.Equal(t, "T1", posts[2].ID)

	assert.Equal(t, models.DefaultAuthorName, posts[0].AuthorName)
	assert.Equal(t, models.DefaultAuthorImageURL, posts[0].AuthorImageURL)
	assert.Equal(t, "Ada", posts[1].AuthorName)
	assert.Equal(t, "https://img/ada.png", posts[1].AuthorImageURL)
	assert.Equal(t, t0.Add(3*time.Minute).UnixMilli(), posts[0].CreatedAt)
	assert.NotNil(t, posts[0].Likes)
}

func TestLatestPostsCapsPageSize(t *testing.T) {
	s := docstore.NewMemoryStore()
	s.Put("users", "reader", map[string]any{"teams": []any{map[string]any{"teamUid": "ops"}}})
	for i, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		s.Put("blogs", id, post("x", i, "ops"))
	}

	posts, err := newService(s).LatestPosts(context.Background(), "reader")
	require.NoError(t, err)
	require.Len(t, posts, DefaultPageSize)
	assert.Equal(t, "g", posts[0].ID)
}

func TestLatestPostsAuthorLookupFailureUsesDefaults(t *testing.T) {
	s := docstore.NewMemoryStore()
	s.Put("users", "reader", map[string]any{"teams": []any{map[string]any{"teamUid": "ops"}}})
	s.Put("blogs", "p1", post("ada", 1, "ops"))

	svc := newService(s)
	svc.Authors = failingUsers{}
	posts, err := svc.LatestPosts(context.Background(), "reader")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, models.DefaultAuthorName, posts[0].AuthorName)
}

func TestLatestPostsStoreFailure(t *testing.T) {
	s := docstore.NewMemoryStore()
	s.Put("users", "reader", map[string]any{"teams": []any{map[string]any{"teamUid": "ops"}}})
	s.Intercept = func(op, collection string) error {
		if op == "query" {
			return errors.New("deadline exceeded")
		}
		return nil
	}

	_, err := newService(s).LatestPosts(context.Background(), "reader")
	assert.Error(t, err)
}

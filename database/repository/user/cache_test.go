package userRepo

import (
	"context"
	"testing"
	"time"

	"teamfeed/database/docstore"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCachedRepo(t *testing.T) (*CachedUserRepo, *miniredis.Miniredis, *int) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	s := seedUsers()
	lookups := new(int)
	s.Intercept = func(op, collection string) error {
		if op == "getMany" {
			*lookups++
		}
		return nil
	}
	return NewCachedUserRepo(NewStoreUserRepo(s), client, time.Minute, zap.NewNop()), mr, lookups
}

func TestCachedUserRepoServesHitsFromRedis(t *testing.T) {
	repo, mr, lookups := newCachedRepo(t)
	ctx := context.Background()

	users, err := repo.GetByIDs(ctx, []string{"u1", "u2"})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, 1, *lookups)

	assert.True(t, mr.Exists(profileKey("u1")))
	assert.Equal(t, time.Minute, mr.TTL(profileKey("u1")))

	users, err = repo.GetByIDs(ctx, []string{"u1", "u2"})
	require.NoError(t, err)
	assert.Equal(t, 1, *lookups)
	assert.Equal(t, "Ada", users["u1"].DisplayName)
	assert.Equal(t, "u1", users["u1"].ID)
	assert.Equal(t, []string{"ops", "design"}, users["u1"].TeamIDs())
	assert.Equal(t, "Bo", users["u2"].DisplayName)
}

func TestCachedUserRepoFetchesOnlyMisses(t *testing.T) {
	repo, mr, lookups := newCachedRepo(t)
	ctx := context.Background()

	_, err := repo.GetByIDs(ctx, []string{"u1"})
	require.NoError(t, err)
	require.Equal(t, 1, *lookups)

	users, err := repo.GetByIDs(ctx, []string{"u1", "u2", "ghost"})
	require.NoError(t, err)
	assert.Equal(t, 2, *lookups)
	assert.Len(t, users, 2)
	assert.True(t, mr.Exists(profileKey("u2")))
	assert.False(t, mr.Exists(profileKey("ghost")))
}

func TestCachedUserRepoIgnoresCorruptEntries(t *testing.T) {
	repo, mr, lookups := newCachedRepo(t)
	require.NoError(t, mr.Set(profileKey("u1"), "{not json"))

	users, err := repo.GetByIDs(context.Background(), []string{"u1"})
	require.NoError(t, err)
	assert.Equal(t, 1, *lookups)
	assert.Equal(t, "Ada", users["u1"].DisplayName)
}

func TestCachedUserRepoGetByIDMissing(t *testing.T) {
	repo, _, _ := newCachedRepo(t)

	_, err := repo.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

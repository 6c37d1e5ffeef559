package userRepo

import (
	"context"
	"testing"
	"time"

	"teamfeed/database/docstore"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedUsers() *docstore.MemoryStore {
	s := docstore.NewMemoryStore()
	s.Put(Collection, "u1", map[string]any{
		"displayName": "Ada",
		"photoURL":    "https://img/ada.png",
		"email":       "ada@example.com",
		"teams": []any{
			map[string]any{"teamUid": "ops", "role": "lead"},
			map[string]any{"teamUid": "ops"},
			map[string]any{"teamUid": ""},
			map[string]any{"teamUid": "design"},
		},
	})
	s.Put(Collection, "u2", map[string]any{"displayName": "Bo"})
	return s
}

func TestGetByID(t *testing.T) {
	repo := NewStoreUserRepo(seedUsers())

	u, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, []string{"ops", "design"}, u.TeamIDs())

	_, err = repo.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestGetByIDs(t *testing.T) {
	repo := NewStoreUserRepo(seedUsers())

	users, err := repo.GetByIDs(context.Background(), []string{"u1", "u2", "ghost"})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "Bo", users["u2"].DisplayName)
	assert.Nil(t, users["ghost"])
}

func TestCachedUserRepoFallsBackWhenRedisIsDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	repo := NewCachedUserRepo(NewStoreUserRepo(seedUsers()), client, time.Minute, zap.NewNop())
	users, err := repo.GetByIDs(context.Background(), []string{"u1", "ghost"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Ada", users["u1"].DisplayName)

	u, err := repo.GetByID(context.Background(), "u2")
	require.NoError(t, err)
	assert.Equal(t, "Bo", u.DisplayName)

	_, err = repo.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

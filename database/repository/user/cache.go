// File: database/repository/user/cache.go
package userRepo

import (
	"context"
	"encoding/json"
	"time"

	"teamfeed/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const profileCachePrefix = "user:profile:"

// CachedUserRepo serves user lookups from Redis before falling back to next.
// Cache failures are logged and treated as misses.
type CachedUserRepo struct {
	next   UserRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedUserRepo wraps next with a Redis read-through cache.
func NewCachedUserRepo(next UserRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedUserRepo {
	return &CachedUserRepo{next: next, client: client, ttl: ttl, logger: logger}
}

func profileKey(id string) string {
	return profileCachePrefix + id
}

func (r *CachedUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	users, err := r.GetByIDs(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if u, ok := users[id]; ok {
		return u, nil
	}
	return r.next.GetByID(ctx, id)
}

func (r *CachedUserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	users := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = profileKey(id)
	}
	var misses []string
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		r.logger.Warn("profile cache read failed", zap.Error(err))
		misses = ids
	} else {
		for i, v := range vals {
			s, ok := v.(string)
			if !ok {
				misses = append(misses, ids[i])
				continue
			}
			var u models.User
			if err := json.Unmarshal([]byte(s), &u); err != nil {
				misses = append(misses, ids[i])
				continue
			}
			users[ids[i]] = &u
		}
	}
	if len(misses) == 0 {
		return users, nil
	}

	fetched, err := r.next.GetByIDs(ctx, misses)
	if err != nil {
		return nil, err
	}
	pipe := r.client.Pipeline()
	for id, u := range fetched {
		users[id] = u
		b, err := json.Marshal(u)
		if err != nil {
			continue
		}
		pipe.Set(ctx, profileKey(id), b, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Warn("profile cache write failed", zap.Error(err))
	}
	return users, nil
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/folioworks/folio-api/internal/portfolio"
	"github.com/redis/go-redis/v9"
)

// ProfileKey is the Redis key holding the cached profile JSON.
const ProfileKey = "portfolio:profile"

// ProfileCache is a read-through cache for the singleton profile.
// Get returns (nil, nil) on a miss. Set overwrites and is used after a write;
// Fill only populates an empty entry and is used after a store read, so a
// read that started before a write never replaces the newer value.
type ProfileCache interface {
	Get(ctx context.Context) (*portfolio.Profile, error)
	Set(ctx context.Context, p *portfolio.Profile) error
	Fill(ctx context.Context, p *portfolio.Profile) error
	Invalidate(ctx context.Context) error
}

// RedisProfileCache stores the profile as JSON under ProfileKey with a TTL.
type RedisProfileCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisProfileCache creates a cache. A zero TTL keeps entries until the next Set.
func NewRedisProfileCache(client *redis.Client, ttl time.Duration) *RedisProfileCache {
	return &RedisProfileCache{client: client, key: ProfileKey, ttl: ttl}
}

func (r *RedisProfileCache) Get(ctx context.Context) (*portfolio.Profile, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var p portfolio.Profile
	if err := json.Unmarshal(b, &p); err != nil {
		// a corrupt entry is treated as a miss and dropped
		_ = r.client.Del(ctx, r.key).Err()
		return nil, nil
	}
	return &p, nil
}

func (r *RedisProfileCache) Set(ctx context.Context, p *portfolio.Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key, b, r.ttl).Err()
}

func (r *RedisProfileCache) Fill(ctx context.Context, p *portfolio.Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return r.client.SetNX(ctx, r.key, b, r.ttl).Err()
}

func (r *RedisProfileCache) Invalidate(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}

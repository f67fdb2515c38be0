package store

import (
	"context"
	"errors"

	"github.com/fekuna/gesstock-service/internal/pkg/cache"
	"github.com/redis/go-redis/v9"
)

// RedisBackend stores each collection as a plain string value without expiry.
type RedisBackend struct {
	cache *cache.RedisClient
}

func NewRedisBackend(c *cache.RedisClient) *RedisBackend {
	return &RedisBackend{cache: c}
}

func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.cache.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	return val, err
}

func (r *RedisBackend) Set(ctx context.Context, key string, value []byte) error {
	return r.cache.Client.Set(ctx, key, value, 0).Err()
}

func (r *RedisBackend) Close() error {
	return r.cache.Close()
}

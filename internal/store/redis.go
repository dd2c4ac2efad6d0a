package store

import (
	"context"
	"errors"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// redisClient is the subset of *redisv9.Client used by RedisCache.
type redisClient interface {
	Get(ctx context.Context, key string) *redisv9.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redisv9.StatusCmd
	Ping(ctx context.Context) *redisv9.StatusCmd
	Close() error
}

// RedisCache is a Cache shared between instances through Redis.
type RedisCache struct {
	client redisClient
	prefix string
}

// NewRedisCache connects lazily to addr; keys are stored as prefix+key.
func NewRedisCache(addr, prefix string) *RedisCache {
	return &RedisCache{
		client: redisv9.NewClient(&redisv9.Options{Addr: addr}),
		prefix: prefix,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redisv9.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Set stores value without expiration.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte) error {
	return c.client.Set(ctx, c.prefix+key, value, 0).Err()
}

// Ping checks connectivity.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

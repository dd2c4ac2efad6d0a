package store

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no cached response exists for a key.
	ErrNotFound = errors.New("no cached response for key")
)

// Cache stores raw provider responses keyed by request URL. Entries never expire.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Options configures New.
type Options struct {
	Backend   string
	RedisAddr string
	KeyPrefix string
}

// New builds the cache selected by opts.Backend. BackendNone returns a nil Cache.
func New(opts Options) (Cache, error) {
	switch opts.Backend {
	case BackendMemory, "":
		return NewMemoryCache(), nil
	case BackendRedis:
		return NewRedisCache(opts.RedisAddr, opts.KeyPrefix), nil
	case BackendNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}

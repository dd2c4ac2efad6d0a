package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	c := NewRedisCache(mr.Addr(), "weather-almanac:")
	defer c.Close()
	require.NoError(t, c.Ping(ctx))

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.Set(ctx, "https://example/archive?latitude=1", []byte("payload")))

	got, err := c.Get(ctx, "https://example/archive?latitude=1")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))

	raw, err := mr.Get("weather-almanac:https://example/archive?latitude=1")
	require.NoError(t, err)
	assert.Equal(t, "payload", raw)
	assert.Zero(t, mr.TTL("weather-almanac:https://example/archive?latitude=1"))
}

func TestRedisCacheUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	c := NewRedisCache(mr.Addr(), "")
	defer c.Close()
	mr.Close()

	_, err = c.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

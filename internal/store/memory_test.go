package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	value := []byte(`{"daily":{}}`)
	require.NoError(t, c.Set(ctx, "k", value))
	value[0] = 'X'

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"daily":{}}`, string(got))
	assert.Equal(t, 1, c.Len())

	c.Flush()
	assert.Equal(t, 0, c.Len())
}

func TestNew(t *testing.T) {
	c, err := New(Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)

	c, err = New(Options{Backend: BackendNone})
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = New(Options{Backend: BackendRedis, RedisAddr: "localhost:0"})
	require.NoError(t, err)
	assert.IsType(t, &RedisCache{}, c)

	_, err = New(Options{Backend: "memcached"})
	assert.Error(t, err)
}

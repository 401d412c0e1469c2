package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geocoder89/birthdays/internal/cache"
)

// setupRedis needs a disposable redis, e.g. TEST_REDIS_ADDR=127.0.0.1:6380
func setupRedis(t *testing.T) *cache.Redis {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, client.FlushDB(context.Background()).Err())

	c := cache.NewRedisFromClient(client, time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRedis_FillAndGet(t *testing.T) {
	ctx := context.Background()
	c := setupRedis(t)
	key := cache.UserKey("jacob")

	_, err := c.Get(ctx, key)
	assert.ErrorIs(t, err, cache.ErrMiss)

	gen, err := c.Generation(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	ok, err := c.Fill(ctx, key, gen, []byte("v1"))
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)
}

func TestRedis_FillAfterInvalidateIsDropped(t *testing.T) {
	ctx := context.Background()
	c := setupRedis(t)
	key := cache.UserKey("jacob")

	gen, err := c.Generation(ctx, key)
	require.NoError(t, err)

	// a write lands between the reader's generation read and its fill
	require.NoError(t, c.Invalidate(ctx, key))

	ok, err := c.Fill(ctx, key, gen, []byte("old"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = c.Get(ctx, key)
	assert.ErrorIs(t, err, cache.ErrMiss)

	gen, err = c.Generation(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
}

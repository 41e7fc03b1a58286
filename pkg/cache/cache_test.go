package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, "test:"), mr
}

func TestSetGet(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestGetMiss(t *testing.T) {
	c, _ := setupCache(t)
	_, err := c.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestEntryExpiresAfterTTL(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 20*time.Second))

	mr.FastForward(19 * time.Second)
	_, err := c.Get(ctx, "k")
	require.NoError(t, err, "entry must survive inside the TTL")

	mr.FastForward(2 * time.Second)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss, "entry must expire after the TTL")
}

func TestDelete(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)

	// deleting nothing is fine
	require.NoError(t, c.Delete(ctx))
}

func TestClearOnlyTouchesOwnPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	ctx := context.Background()

	mine := NewRedis(client, "mine:")
	other := NewRedis(client, "other:")
	require.NoError(t, mine.Set(ctx, "k", []byte("a"), time.Minute))
	require.NoError(t, other.Set(ctx, "k", []byte("b"), time.Minute))

	require.NoError(t, mine.Clear(ctx))

	_, err := mine.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
	got, err := other.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), got)
}

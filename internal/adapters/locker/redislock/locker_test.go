package redislock

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("PACKMATES_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("PACKMATES_TEST_REDIS_ADDR not set; skipping redis locker test")
	}
	c := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Ping(context.Background()).Err())
	return c
}

func TestLocker_ExclusiveAndRelease(t *testing.T) {
	c := newClient(t)
	l := New(c, Options{Prefix: "test:" + uuid.NewString() + ":", TTL: 2 * time.Second})
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "user:1")
	require.NoError(t, err)

	short, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	_, err = l.Lock(short, "user:1")
	assert.ErrorIs(t, err, ErrLockTimeout)

	unlock()

	unlock2, err := l.Lock(ctx, "user:1")
	require.NoError(t, err)
	unlock2()
}

func TestLocker_ReleaseDoesNotStealForeignToken(t *testing.T) {
	c := newClient(t)
	prefix := "test:" + uuid.NewString() + ":"
	l := New(c, Options{Prefix: prefix, TTL: 2 * time.Second})
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "k")
	require.NoError(t, err)

	// otro proceso se quedó con la key (p.ej. después de expirar la nuestra)
	require.NoError(t, c.Set(ctx, prefix+"k", "foreign", time.Second).Err())
	unlock()

	v, err := c.Get(ctx, prefix+"k").Result()
	require.NoError(t, err)
	assert.Equal(t, "foreign", v)
}

package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fekuna/gesstock-service/internal/apperror"
	"github.com/fekuna/gesstock-service/internal/pkg/cache"
	"github.com/fekuna/gesstock-service/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedMutexBlocksSameKey(t *testing.T) {
	k := NewKeyedMutex()
	ctx := context.Background()

	unlock, err := k.Lock(ctx, "a")
	require.NoError(t, err)

	other, err := k.Lock(ctx, "b")
	require.NoError(t, err)
	other()

	timeout, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = k.Lock(timeout, "a")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	again, err := k.Lock(ctx, "a")
	require.NoError(t, err)
	again()
	assert.Empty(t, k.locks)
}

func newRedisCache(t *testing.T) (*cache.RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := cache.NewRedisClient(&cache.Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisLockerBusy(t *testing.T) {
	c, mr := newRedisCache(t)
	l := NewRedisLocker(c, RedisLockerConfig{Attempts: 2, RetryDelay: time.Millisecond}, logger.NewNop())
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "user_u1_produtos")
	require.NoError(t, err)
	assert.True(t, mr.Exists("lock:user_u1_produtos"))

	_, err = l.Lock(ctx, "user_u1_produtos")
	assert.ErrorIs(t, err, apperror.ErrBusy)

	unlock()
	assert.False(t, mr.Exists("lock:user_u1_produtos"))
}

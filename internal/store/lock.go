package store

import (
	"context"
	"sync"
	"time"

	"github.com/fekuna/gesstock-service/internal/apperror"
	"github.com/fekuna/gesstock-service/internal/pkg/cache"
	"github.com/fekuna/gesstock-service/internal/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// KeyedMutex is an in-process Locker with one mutex per key.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: map[string]*keyLock{}}
}

func (k *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{ch: make(chan struct{}, 1)}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
		return func() { k.release(key, l) }, nil
	case <-ctx.Done():
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
		return nil, ctx.Err()
	}
}

func (k *KeyedMutex) release(key string, l *keyLock) {
	<-l.ch
	k.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()
}

type RedisLockerConfig struct {
	TTL        time.Duration
	Attempts   int
	RetryDelay time.Duration
}

// RedisLocker takes a SET NX lock per key, retrying a bounded number of times.
type RedisLocker struct {
	cache  *cache.RedisClient
	cfg    RedisLockerConfig
	logger logger.ZapLogger
}

func NewRedisLocker(c *cache.RedisClient, cfg RedisLockerConfig, log logger.ZapLogger) *RedisLocker {
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Second
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 100 * time.Millisecond
	}
	return &RedisLocker{cache: c, cfg: cfg, logger: log}
}

func (r *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	lockKey := "lock:" + key
	lockValue := uuid.New().String()

	for i := 0; i < r.cfg.Attempts; i++ {
		ok, err := r.cache.AcquireLock(ctx, lockKey, lockValue, r.cfg.TTL)
		if err != nil {
			r.logger.Error("failed to acquire lock redis error", zap.String("key", lockKey), zap.Error(err))
		}
		if ok {
			return func() {
				// The request context may already be done; release regardless.
				if err := r.cache.ReleaseLock(context.Background(), lockKey, lockValue); err != nil {
					r.logger.Warn("failed to release lock", zap.String("key", lockKey), zap.Error(err))
				}
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.cfg.RetryDelay):
		}
	}
	return nil, apperror.ErrBusy
}

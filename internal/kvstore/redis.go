package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type RedisBackend struct {
	client *redis.Client
	prefix string
}

func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return client, nil
}

func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix}
}

// backendError classifies a go-redis failure. A cancelled or expired caller
// context is returned as is and does not count as an outage.
func backendError(ctx context.Context, op, key string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %s %s: %v", ErrStorageUnavailable, op, key, err)
}

func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, backendError(ctx, "get", key, err)
	}
	return val, true, nil
}

func (r *RedisBackend) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return backendError(ctx, "set", key, err)
	}
	return nil
}

func (r *RedisBackend) Del(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return backendError(ctx, "del", key, err)
	}
	return nil
}

// NewRedisStore returns a Redis backed store that falls back to memory. When
// the server is unreachable at start the store begins degraded.
func NewRedisStore(ctx context.Context, addr, password string, db int, prefix string) (*Store, *redis.Client) {
	client, err := NewRedisClient(ctx, addr, password, db)
	if err != nil {
		fallback := NewFallbackBackend(NewMemoryBackend())
		fallback.markDegraded(err)
		return New(fallback), nil
	}
	return New(NewFallbackBackend(NewRedisBackend(client, prefix))), client
}

package kvstore

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"
)

// FallbackBackend mirrors every write into memory and serves from memory
// alone once the primary backend has failed.
type FallbackBackend struct {
	primary  Backend
	memory   *MemoryBackend
	degraded atomic.Bool
}

func NewFallbackBackend(primary Backend) *FallbackBackend {
	return &FallbackBackend{
		primary: primary,
		memory:  NewMemoryBackend(),
	}
}

func (f *FallbackBackend) Degraded() bool {
	return f.degraded.Load()
}

func (f *FallbackBackend) markDegraded(err error) {
	if f.degraded.CompareAndSwap(false, true) {
		zap.L().Warn("storage backend unavailable, continuing in memory only", zap.Error(err))
	}
}

func (f *FallbackBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.Degraded() {
		return f.memory.Get(ctx, key)
	}
	data, found, err := f.primary.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrStorageUnavailable) {
			return nil, false, err
		}
		f.markDegraded(err)
		return f.memory.Get(ctx, key)
	}
	if found {
		_ = f.memory.Set(ctx, key, data)
	}
	return data, found, nil
}

func (f *FallbackBackend) Set(ctx context.Context, key string, value []byte) error {
	_ = f.memory.Set(ctx, key, value)
	if f.Degraded() {
		return nil
	}
	if err := f.primary.Set(ctx, key, value); err != nil {
		if !errors.Is(err, ErrStorageUnavailable) {
			return err
		}
		f.markDegraded(err)
	}
	return nil
}

func (f *FallbackBackend) Del(ctx context.Context, key string) error {
	_ = f.memory.Del(ctx, key)
	if f.Degraded() {
		return nil
	}
	if err := f.primary.Del(ctx, key); err != nil {
		if !errors.Is(err, ErrStorageUnavailable) {
			return err
		}
		f.markDegraded(err)
	}
	return nil
}

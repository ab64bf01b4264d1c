package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrCorruptData        = errors.New("corrupt data")
)

type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}

type degrader interface {
	Degraded() bool
}

// Store keeps JSON documents under string keys.
type Store struct {
	backend Backend
}

func New(backend Backend) *Store {
	return &Store{backend: backend}
}

func (s *Store) Read(ctx context.Context, key string, dst any) (bool, error) {
	data, found, err := s.backend.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return true, fmt.Errorf("%w: key %s: %v", ErrCorruptData, key, err)
	}
	return true, nil
}

func (s *Store) Write(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.backend.Set(ctx, key, data)
}

func (s *Store) Remove(ctx context.Context, key string) error {
	return s.backend.Del(ctx, key)
}

// Degraded reports whether the store has lost its primary backend.
func (s *Store) Degraded() bool {
	if d, ok := s.backend.(degrader); ok {
		return d.Degraded()
	}
	return false
}

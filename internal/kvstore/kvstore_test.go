package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func newRedisStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return New(NewRedisBackend(client, "ebookmarket:")), mr
}

func TestStore_ReadWrite(t *testing.T) {
	redisStore, _ := newRedisStore(t)

	stores := map[string]*Store{
		"memory": New(NewMemoryBackend()),
		"redis":  redisStore,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			var missing []record
			found, err := store.Read(ctx, "ebooks", &missing)
			require.NoError(t, err)
			assert.False(t, found)

			expected := []record{{Name: "Mystery at Midnight Manor", Price: 14.99}}
			require.NoError(t, store.Write(ctx, "ebooks", expected))

			var actual []record
			found, err = store.Read(ctx, "ebooks", &actual)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, expected, actual)

			require.NoError(t, store.Remove(ctx, "ebooks"))
			found, err = store.Read(ctx, "ebooks", &actual)
			require.NoError(t, err)
			assert.False(t, found)
			assert.False(t, store.Degraded())
		})
	}
}

func TestStore_ReadCorruptData(t *testing.T) {
	store, mr := newRedisStore(t)
	require.NoError(t, mr.Set("ebookmarket:users", "{not json"))

	var users []record
	found, err := store.Read(context.Background(), "users", &users)

	assert.True(t, found)
	assert.ErrorIs(t, err, ErrCorruptData)
}

func TestRedisBackend_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	defer client.Close()
	mr.Close()

	backend := NewRedisBackend(client, "")
	_, _, err = backend.Get(context.Background(), "users")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, backend.Set(context.Background(), "users", []byte("[]")), ErrStorageUnavailable)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(context.Background(), addr, "", 0)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestFallbackBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	defer client.Close()

	fallback := NewFallbackBackend(NewRedisBackend(client, ""))
	store := New(fallback)
	ctx := context.Background()

	before := []record{{Name: "Journey to Self-Discovery", Price: 19.99}}
	require.NoError(t, store.Write(ctx, "ebooks", before))
	assert.False(t, store.Degraded())

	mr.Close()

	var actual []record
	found, err := store.Read(ctx, "ebooks", &actual)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, before, actual)
	assert.True(t, store.Degraded())

	after := append(before, record{Name: "The Art of Digital Marketing", Price: 29.99})
	require.NoError(t, store.Write(ctx, "ebooks", after))

	found, err = store.Read(ctx, "ebooks", &actual)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, after, actual)

	require.NoError(t, store.Remove(ctx, "ebooks"))
	found, err = store.Read(ctx, "ebooks", &actual)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFallbackBackend_CancelledContextKeepsRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	defer client.Close()

	store := New(NewFallbackBackend(NewRedisBackend(client, "ebookmarket:")))

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	var actual []record
	_, err = store.Read(cancelled, "ebooks", &actual)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, store.Write(cancelled, "ebooks", []record{{Name: "Lost", Price: 1}}), context.Canceled)
	assert.False(t, store.Degraded())

	require.NoError(t, store.Write(context.Background(), "ebooks", []record{{Name: "Mystery at Midnight Manor", Price: 14.99}}))
	assert.True(t, mr.Exists("ebookmarket:ebooks"))
	assert.False(t, store.Degraded())
}

func TestRedisBackend_DeadlineExceeded(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	defer client.Close()

	backend := NewRedisBackend(client, "")
	expired, cancel := context.WithTimeout(context.Background(), -time.Second)
	defer cancel()

	_, _, err = backend.Get(expired, "users")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, backend.Del(expired, "users"), context.DeadlineExceeded)
}

func TestNewRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	store, client := NewRedisStore(ctx, mr.Addr(), "", 0, "ebookmarket:")
	require.NotNil(t, client)
	defer client.Close()
	assert.False(t, store.Degraded())

	require.NoError(t, store.Write(ctx, "ebooks", []record{{Name: "Mystery at Midnight Manor", Price: 14.99}}))
	assert.True(t, mr.Exists("ebookmarket:ebooks"))

	addr := mr.Addr()
	mr.Close()

	degraded, noClient := NewRedisStore(ctx, addr, "", 0, "ebookmarket:")
	assert.Nil(t, noClient)
	assert.True(t, degraded.Degraded())

	require.NoError(t, degraded.Write(ctx, "ebooks", []record{{Name: "Offline", Price: 1}}))
	var actual []record
	found, err := degraded.Read(ctx, "ebooks", &actual)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []record{{Name: "Offline", Price: 1}}, actual)
}

package inflight

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_Acquire(t *testing.T) {
	guard := New()
	key := Key("user-1", "purchase")

	release, err := guard.Acquire(key)
	require.NoError(t, err)

	_, err = guard.Acquire(key)
	assert.ErrorIs(t, err, ErrInFlight)

	otherRelease, err := guard.Acquire(Key("user-2", "purchase"))
	require.NoError(t, err)
	otherRelease()

	release()
	release, err = guard.Acquire(key)
	require.NoError(t, err)
	release()
}

func TestGuard_Concurrent(t *testing.T) {
	guard := New()
	var admitted atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, err := guard.Acquire(Key("user-1", "create")); err == nil {
				admitted.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), admitted.Load())
}

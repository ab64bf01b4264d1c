package inflight

import (
	"errors"
	"sync"
)

var ErrInFlight = errors.New("submission already in progress")

// Guard admits at most one holder per key at a time.
type Guard struct {
	keys sync.Map
}

func New() *Guard {
	return &Guard{}
}

// Acquire claims key and returns the function that releases it.
func (g *Guard) Acquire(key string) (func(), error) {
	if _, loaded := g.keys.LoadOrStore(key, struct{}{}); loaded {
		return nil, ErrInFlight
	}
	return func() { g.keys.Delete(key) }, nil
}

func Key(userID, form string) string {
	return userID + ":" + form
}

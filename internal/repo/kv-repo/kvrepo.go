package kvrepo

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
	"github.com/GlebRadaev/ebookmarket/internal/kvstore"
)

const (
	usersKey         = "users"
	ebooksKey        = "ebooks"
	purchasesKey     = "purchases"
	withdrawalsKey   = "withdrawals"
	sessionKeyPrefix = "currentUser:"
)

// collection is a JSON array stored under a single key. Updates of one
// collection are serialised; updates across collections are not atomic.
type collection[T any] struct {
	key   string
	store *kvstore.Store
	mu    sync.Mutex
}

func newCollection[T any](store *kvstore.Store, key string) *collection[T] {
	return &collection[T]{key: key, store: store}
}

// load returns an empty collection when the stored document cannot be decoded.
func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	var items []T
	_, err := c.store.Read(ctx, c.key, &items)
	if errors.Is(err, kvstore.ErrCorruptData) {
		zap.L().Warn("corrupt collection, starting empty", zap.String("key", c.key), zap.Error(err))
		return []T{}, nil
	}
	if err != nil {
		zap.L().Error("failed to read collection", zap.String("key", c.key), zap.Error(err))
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *collection[T]) update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	if err := c.store.Write(ctx, c.key, items); err != nil {
		zap.L().Error("failed to write collection", zap.String("key", c.key), zap.Error(err))
		return err
	}
	return nil
}

type txKey struct{}

// TxManager serialises units of work against the key-value store. Writes made
// before a failure are not rolled back.
type TxManager struct {
	mu sync.Mutex
}

func NewTXManager() *TxManager {
	return &TxManager{}
}

func (m *TxManager) Begin(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(bool); ok {
		return fn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}

// Repositories are the key-value backed repositories sharing one store.
type Repositories struct {
	Users       *UserRepository
	Ebooks      *EbookRepository
	Purchases   *PurchaseRepository
	Withdrawals *WithdrawalRepository
	Sessions    *SessionRepository
	TxManager   *TxManager
}

func New(store *kvstore.Store) *Repositories {
	users := newCollection[domain.User](store, usersKey)
	ebooks := newCollection[domain.Ebook](store, ebooksKey)
	purchases := newCollection[domain.Purchase](store, purchasesKey)
	withdrawals := newCollection[domain.Withdrawal](store, withdrawalsKey)

	return &Repositories{
		Users:       newUserRepository(users, withdrawals),
		Ebooks:      newEbookRepository(ebooks, purchases),
		Purchases:   newPurchaseRepository(purchases),
		Withdrawals: newWithdrawalRepository(withdrawals),
		Sessions:    NewSessionRepository(store),
		TxManager:   NewTXManager(),
	}
}

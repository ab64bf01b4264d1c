package repo

import (
	"github.com/GlebRadaev/ebookmarket/internal/kvstore"
	"github.com/GlebRadaev/ebookmarket/internal/pg"
	balancerepo "github.com/GlebRadaev/ebookmarket/internal/repo/balance-repo"
	ebookrepo "github.com/GlebRadaev/ebookmarket/internal/repo/ebook-repo"
	kvrepo "github.com/GlebRadaev/ebookmarket/internal/repo/kv-repo"
	purchaserepo "github.com/GlebRadaev/ebookmarket/internal/repo/purchase-repo"
	userrepo "github.com/GlebRadaev/ebookmarket/internal/repo/user-repo"
	withdrawalrepo "github.com/GlebRadaev/ebookmarket/internal/repo/withdrawal-repo"
	"github.com/GlebRadaev/ebookmarket/internal/service/accountservice"
	"github.com/GlebRadaev/ebookmarket/internal/service/authservice"
	"github.com/GlebRadaev/ebookmarket/internal/service/balanceservice"
	"github.com/GlebRadaev/ebookmarket/internal/service/ebookservice"
)

type UserRepo interface {
	authservice.Repo
	accountservice.Repo
}

type Repositories struct {
	UserRepo     UserRepo
	BalanceRepo  balanceservice.BalanceRepo
	EbookRepo    ebookservice.EbookRepo
	PurchaseRepo ebookservice.PurchaseRepo
	Withdrawal   balanceservice.WithdrawalRepo
	SessionRepo  authservice.SessionRepo
	TxManager    pg.TXManager

	store *kvstore.Store
}

// New builds Postgres repositories. Sessions always live in the key-value store.
func New(conn pg.Database, txManager pg.TXManager, store *kvstore.Store) *Repositories {
	return &Repositories{
		UserRepo:     userrepo.New(conn),
		BalanceRepo:  balancerepo.New(conn, txManager),
		EbookRepo:    ebookrepo.New(conn, txManager),
		PurchaseRepo: purchaserepo.New(conn),
		Withdrawal:   withdrawalrepo.New(conn),
		SessionRepo:  kvrepo.NewSessionRepository(store),
		TxManager:    txManager,
		store:        store,
	}
}

// NewKV builds repositories that keep every collection in the key-value store.
func NewKV(store *kvstore.Store) *Repositories {
	kv := kvrepo.New(store)
	return &Repositories{
		UserRepo:     kv.Users,
		BalanceRepo:  kv.Users,
		EbookRepo:    kv.Ebooks,
		PurchaseRepo: kv.Purchases,
		Withdrawal:   kv.Withdrawals,
		SessionRepo:  kv.Sessions,
		TxManager:    kv.TxManager,
		store:        store,
	}
}

// Degraded reports whether the key-value store has fallen back to memory.
func (r *Repositories) Degraded() bool {
	if r.store == nil {
		return false
	}
	return r.store.Degraded()
}

package service

import (
	"context"

	"github.com/GlebRadaev/ebookmarket/internal/config"
	"github.com/GlebRadaev/ebookmarket/internal/handlers/account"
	"github.com/GlebRadaev/ebookmarket/internal/handlers/auth"
	"github.com/GlebRadaev/ebookmarket/internal/handlers/balance"
	"github.com/GlebRadaev/ebookmarket/internal/handlers/ebooks"
	"github.com/GlebRadaev/ebookmarket/internal/handlers/subscriptions"
	"github.com/GlebRadaev/ebookmarket/internal/repo"
	"github.com/GlebRadaev/ebookmarket/pkg/generator"
	"github.com/GlebRadaev/ebookmarket/pkg/payment"

	pkgauth "github.com/GlebRadaev/ebookmarket/pkg/auth"

	accountservice "github.com/GlebRadaev/ebookmarket/internal/service/accountservice"
	authservice "github.com/GlebRadaev/ebookmarket/internal/service/authservice"
	balanceservice "github.com/GlebRadaev/ebookmarket/internal/service/balanceservice"
	ebookservice "github.com/GlebRadaev/ebookmarket/internal/service/ebookservice"
	subscriptionservice "github.com/GlebRadaev/ebookmarket/internal/service/subscriptionservice"
)

type Seeder interface {
	Seed(ctx context.Context) error
}

type Services struct {
	AuthService         auth.Service
	Authenticator       pkgauth.TokenAuthenticator
	AccountService      account.Service
	BalanceService      balance.Service
	EbookService        ebooks.Service
	SubscriptionService subscriptions.Service
	Seeder              Seeder
}

func New(repo *repo.Repositories, cfg *config.Config, payments payment.Processor, gen generator.ContentGenerator) *Services {
	hashService := pkgauth.NewHashService(0)

	authService := authservice.New(repo.UserRepo, repo.SessionRepo, hashService, pkgauth.NewJWTService(cfg.JWTSecret), cfg.TokenTTL)
	accountService := accountservice.New(repo.UserRepo, repo.BalanceRepo, repo.SessionRepo, hashService)
	balanceService := balanceservice.New(repo.BalanceRepo, repo.Withdrawal, repo.TxManager, cfg.MinWithdrawal)
	subscriptionService := subscriptionservice.New(accountService, payments)
	ebookService := ebookservice.New(repo.EbookRepo, repo.PurchaseRepo, accountService, repo.TxManager, payments, gen, ebookservice.Options{
		CommissionRate:      cfg.CommissionRate,
		CommissionRecipient: cfg.CommissionRecipient,
		EnforceTierLimits:   cfg.EnforceTierLimits,
	})

	return &Services{
		AuthService:         authService,
		Authenticator:       authService,
		AccountService:      accountService,
		BalanceService:      balanceService,
		EbookService:        ebookService,
		SubscriptionService: subscriptionService,
		Seeder:              ebookService,
	}
}

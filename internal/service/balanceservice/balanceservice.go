package balanceservice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
	"github.com/GlebRadaev/ebookmarket/internal/metrics"
	"github.com/GlebRadaev/ebookmarket/internal/pg"
	"github.com/GlebRadaev/ebookmarket/pkg/payment"
	"github.com/GlebRadaev/ebookmarket/pkg/validate"
)

type BalanceRepo interface {
	GetBalance(ctx context.Context, userID string) (*domain.Balance, error)
	LockBalance(ctx context.Context, userID string) (*domain.Balance, error)
	UpdateBalance(ctx context.Context, userID string, delta float64) (*domain.Balance, error)
}

type WithdrawalRepo interface {
	CreateWithdrawal(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error)
	GetWithdrawalsByUserID(ctx context.Context, userID string) ([]domain.Withdrawal, error)
	FindForProcessing(ctx context.Context, limit uint32) ([]domain.Withdrawal, error)
	UpdateStatus(ctx context.Context, withdrawalID, status string, processedAt time.Time) error
}

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("withdrawal amount must be positive")
	ErrBelowMinimum        = errors.New("withdrawal amount is below the minimum")
	ErrInvalidAccount      = errors.New("invalid payout account number")
)

type Service struct {
	balanceRepo    BalanceRepo
	withdrawalRepo WithdrawalRepo
	txManager      pg.TXManager
	minWithdrawal  float64
}

func New(balanceRepo BalanceRepo, withdrawalRepo WithdrawalRepo, txManager pg.TXManager, minWithdrawal float64) *Service {
	return &Service{
		balanceRepo:    balanceRepo,
		withdrawalRepo: withdrawalRepo,
		txManager:      txManager,
		minWithdrawal:  minWithdrawal,
	}
}

func (s *Service) GetBalance(ctx context.Context, userID string) (*domain.Balance, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	balance, err := s.balanceRepo.GetBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Error(err))
		return nil, err
	}
	if balance == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return balance, nil
}

// Withdraw debits amount and records a pending withdrawal for the payout worker.
func (s *Service) Withdraw(ctx context.Context, userID string, amount float64, method, account string) (*domain.Withdrawal, error) {
	if err := payment.ValidatePayoutMethod(method); err != nil {
		return nil, err
	}
	if method == payment.MethodStripe && account != "" && !validate.IsCardNumber(account) {
		return nil, ErrInvalidAccount
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var created *domain.Withdrawal
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		balance, err := s.balanceRepo.LockBalance(ctx, userID)
		if err != nil {
			zap.L().Error("failed to lock balance", zap.String("userID", userID), zap.Error(err))
			return err
		}
		if balance == nil {
			return domain.ErrNotAuthenticated
		}
		if amount > balance.Current {
			return ErrInsufficientBalance
		}
		if amount < s.minWithdrawal {
			return ErrBelowMinimum
		}

		if _, err := s.balanceRepo.UpdateBalance(ctx, userID, -amount); err != nil {
			zap.L().Error("failed to update user balance", zap.Error(err))
			return err
		}

		created, err = s.withdrawalRepo.CreateWithdrawal(ctx, &domain.Withdrawal{
			ID:          uuid.NewString(),
			UserID:      userID,
			Amount:      amount,
			Method:      method,
			Account:     account,
			Status:      domain.WithdrawalPending,
			RequestedAt: time.Now().UTC(),
		})
		if err != nil {
			zap.L().Error("failed to create withdrawal record", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordWithdrawal(method, domain.WithdrawalPending)
	zap.L().Info("withdrawal requested", zap.String("userID", userID), zap.Float64("amount", amount), zap.String("method", method))
	return created, nil
}

func (s *Service) GetWithdrawals(ctx context.Context, userID string) ([]domain.Withdrawal, error) {
	withdrawals, err := s.withdrawalRepo.GetWithdrawalsByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	return withdrawals, nil
}

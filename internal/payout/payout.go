package payout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/ebookmarket/internal/config"
	"github.com/GlebRadaev/ebookmarket/internal/domain"
	"github.com/GlebRadaev/ebookmarket/internal/metrics"
	"github.com/GlebRadaev/ebookmarket/internal/pg"
	"github.com/GlebRadaev/ebookmarket/internal/service/balanceservice"
	"github.com/GlebRadaev/ebookmarket/pkg/payment"
)

const maxRetries = 3

var processingWithdrawals sync.Map

// Service settles pending withdrawals through the payment processor.
type Service struct {
	withdrawalRepo balanceservice.WithdrawalRepo
	balanceRepo    balanceservice.BalanceRepo
	txManager      pg.TXManager
	payments       payment.Processor
	limit          uint32
	workerPool     WorkerPoolI
	updateInterval time.Duration
	retryInterval  time.Duration
}

func New(cfg *config.Config, withdrawalRepo balanceservice.WithdrawalRepo, balanceRepo balanceservice.BalanceRepo, txManager pg.TXManager, payments payment.Processor) *Service {
	return &Service{
		withdrawalRepo: withdrawalRepo,
		balanceRepo:    balanceRepo,
		txManager:      txManager,
		payments:       payments,
		limit:          1000,
		workerPool:     NewWorkerPool(10),
		updateInterval: cfg.PayoutInterval,
		retryInterval:  time.Second,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Payout service started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping payout service")
			s.workerPool.Close()
			return
		case <-ticker.C:
			s.processWithdrawals(ctx)
		}
	}
}

func (s *Service) processWithdrawals(ctx context.Context) {
	withdrawals, err := s.withdrawalRepo.FindForProcessing(ctx, atomic.LoadUint32(&s.limit))
	if err != nil {
		zap.L().Error("Failed to fetch withdrawals for processing", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, withdrawal := range withdrawals {
		withdrawal := withdrawal

		if _, loaded := processingWithdrawals.LoadOrStore(withdrawal.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer processingWithdrawals.Delete(withdrawal.ID)
				return s.handleWithdrawal(ctx, withdrawal)
			})
			if err != nil {
				processingWithdrawals.Delete(withdrawal.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error dispatching withdrawals", zap.Error(err))
	}
}

// handleWithdrawal retries transient processor errors. A withdrawal that
// still fails stays pending for the next tick.
func (s *Service) handleWithdrawal(ctx context.Context, withdrawal domain.Withdrawal) error {
	req := payment.PayoutRequest{
		WithdrawalID: withdrawal.ID,
		UserID:       withdrawal.UserID,
		Amount:       withdrawal.Amount,
		Method:       withdrawal.Method,
		Account:      withdrawal.Account,
	}

	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var receipt *payment.Receipt
		receipt, err = s.payments.Payout(ctx, req)
		switch {
		case err == nil:
			return s.settle(ctx, withdrawal, domain.WithdrawalProcessed, receipt.ProcessedAt)
		case errors.Is(err, payment.ErrDeclined),
			errors.Is(err, payment.ErrUnsupportedMethod),
			errors.Is(err, payment.ErrMethodRequired):
			zap.L().Warn("Payout rejected", zap.String("withdrawalID", withdrawal.ID), zap.Error(err))
			return s.settle(ctx, withdrawal, domain.WithdrawalFailed, time.Now().UTC())
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		}

		if attempt < maxRetries {
			zap.L().Warn("Payout failed, retrying", zap.String("withdrawalID", withdrawal.ID), zap.Int("attempt", attempt), zap.Error(err))
			if serr := sleep(ctx, s.retryInterval*time.Duration(attempt)); serr != nil {
				return serr
			}
		}
	}
	return fmt.Errorf("failed to pay out withdrawal %s after %d retries: %w", withdrawal.ID, maxRetries, err)
}

// settle records the final status. A failed payout returns the amount to the balance.
func (s *Service) settle(ctx context.Context, withdrawal domain.Withdrawal, status string, processedAt time.Time) error {
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.withdrawalRepo.UpdateStatus(ctx, withdrawal.ID, status, processedAt); err != nil {
			return fmt.Errorf("failed to update withdrawal %s: %w", withdrawal.ID, err)
		}
		if status == domain.WithdrawalFailed {
			if _, err := s.balanceRepo.UpdateBalance(ctx, withdrawal.UserID, withdrawal.Amount); err != nil {
				return fmt.Errorf("failed to refund withdrawal %s: %w", withdrawal.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.RecordWithdrawal(withdrawal.Method, status)
	zap.L().Info("Withdrawal settled", zap.String("withdrawalID", withdrawal.ID), zap.String("status", status))
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

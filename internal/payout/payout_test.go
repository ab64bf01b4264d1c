package payout

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/GlebRadaev/ebookmarket/internal/config"
	"github.com/GlebRadaev/ebookmarket/internal/domain"
	"github.com/GlebRadaev/ebookmarket/internal/pg"
	"github.com/GlebRadaev/ebookmarket/internal/service/balanceservice"
	"github.com/GlebRadaev/ebookmarket/pkg/payment"
)

func NewMock(t *testing.T) (*Service, *balanceservice.MockWithdrawalRepo, *balanceservice.MockBalanceRepo, *payment.MockProcessor) {
	cfg := &config.Config{PayoutInterval: 10 * time.Millisecond}
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	withdrawalRepo := balanceservice.NewMockWithdrawalRepo(ctrl)
	balanceRepo := balanceservice.NewMockBalanceRepo(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn func(ctx context.Context) error) error {
		return fn(ctx)
	}).AnyTimes()
	payments := payment.NewMockProcessor(ctrl)

	service := New(cfg, withdrawalRepo, balanceRepo, txManager, payments)
	service.retryInterval = time.Millisecond
	return service, withdrawalRepo, balanceRepo, payments
}

func withdrawal(id string) domain.Withdrawal {
	return domain.Withdrawal{
		ID:      id,
		UserID:  "user-1",
		Amount:  25,
		Method:  payment.MethodPayPal,
		Account: "reader@example.com",
		Status:  domain.WithdrawalPending,
	}
}

func TestService_Start(t *testing.T) {
	service, withdrawalRepo, _, _ := NewMock(t)
	withdrawalRepo.EXPECT().FindForProcessing(gomock.Any(), uint32(1000)).Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	service.Start(ctx)
	time.Sleep(30 * time.Millisecond)
	cancel()
}

func TestService_processWithdrawals(t *testing.T) {
	tests := []struct {
		name            string
		mockFind        func(ctx context.Context, limit uint32) ([]domain.Withdrawal, error)
		mockAddTask     func(ctx context.Context, task Task) error
		withdrawalCount int
	}{
		{
			name: "dispatches pending withdrawals",
			mockFind: func(ctx context.Context, limit uint32) ([]domain.Withdrawal, error) {
				return []domain.Withdrawal{withdrawal("w-1"), withdrawal("w-2")}, nil
			},
			mockAddTask: func(ctx context.Context, task Task) error {
				return nil
			},
			withdrawalCount: 2,
		},
		{
			name: "fails when fetching withdrawals",
			mockFind: func(ctx context.Context, limit uint32) ([]domain.Withdrawal, error) {
				return nil, fmt.Errorf("failed to fetch withdrawals for processing")
			},
			withdrawalCount: 0,
		},
		{
			name: "error in workerPool AddTask",
			mockFind: func(ctx context.Context, limit uint32) ([]domain.Withdrawal, error) {
				return []domain.Withdrawal{withdrawal("w-3")}, nil
			},
			mockAddTask: func(ctx context.Context, task Task) error {
				return fmt.Errorf("failed to add task to worker pool")
			},
			withdrawalCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			withdrawalRepo := balanceservice.NewMockWithdrawalRepo(ctrl)
			workerPool := NewMockWorkerPoolI(ctrl)

			withdrawalRepo.EXPECT().
				FindForProcessing(gomock.Any(), uint32(2)).
				DoAndReturn(tt.mockFind).
				Times(1)
			if tt.withdrawalCount > 0 {
				workerPool.EXPECT().
					AddTask(gomock.Any(), gomock.Any()).
					DoAndReturn(tt.mockAddTask).
					Times(tt.withdrawalCount)
			}

			service := &Service{
				withdrawalRepo: withdrawalRepo,
				workerPool:     workerPool,
				limit:          2,
			}

			zap.ReplaceGlobals(zap.NewExample())
			defer processingWithdrawals.Range(func(key, _ any) bool {
				processingWithdrawals.Delete(key)
				return true
			})

			service.processWithdrawals(context.Background())

			// Rejected tasks must not stay marked as in progress.
			if tt.name == "error in workerPool AddTask" {
				_, loaded := processingWithdrawals.Load("w-3")
				assert.False(t, loaded)
			}
		})
	}
}

func TestService_processWithdrawals_SkipsInProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	withdrawalRepo := balanceservice.NewMockWithdrawalRepo(ctrl)
	workerPool := NewMockWorkerPoolI(ctrl)

	processingWithdrawals.Store("w-busy", struct{}{})
	defer processingWithdrawals.Delete("w-busy")

	withdrawalRepo.EXPECT().FindForProcessing(gomock.Any(), uint32(5)).
		Return([]domain.Withdrawal{withdrawal("w-busy")}, nil)
	workerPool.EXPECT().AddTask(gomock.Any(), gomock.Any()).Times(0)

	service := &Service{withdrawalRepo: withdrawalRepo, workerPool: workerPool, limit: 5}
	service.processWithdrawals(context.Background())
}

func TestService_handleWithdrawal(t *testing.T) {
	processedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name           string
		payoutCalls    int
		payoutErr      error
		expectedStatus string
		updateErr      error
		refundErr      error
		cancelContext  bool
		expectedError  string
	}{
		{
			name:           "Processed",
			payoutCalls:    1,
			expectedStatus: domain.WithdrawalProcessed,
		},
		{
			name:           "Declined is refunded",
			payoutCalls:    1,
			payoutErr:      payment.ErrDeclined,
			expectedStatus: domain.WithdrawalFailed,
		},
		{
			name:           "Unsupported method fails",
			payoutCalls:    1,
			payoutErr:      payment.ErrUnsupportedMethod,
			expectedStatus: domain.WithdrawalFailed,
		},
		{
			name:          "Transient error after retries",
			payoutCalls:   3,
			payoutErr:     errors.New("gateway timeout"),
			expectedError: "failed to pay out withdrawal w-1 after 3 retries: gateway timeout",
		},
		{
			name:           "Status update fails",
			payoutCalls:    1,
			expectedStatus: domain.WithdrawalProcessed,
			updateErr:      errors.New("db error"),
			expectedError:  "failed to update withdrawal w-1: db error",
		},
		{
			name:           "Refund fails",
			payoutCalls:    1,
			payoutErr:      payment.ErrDeclined,
			expectedStatus: domain.WithdrawalFailed,
			refundErr:      errors.New("db error"),
			expectedError:  "failed to refund withdrawal w-1: db error",
		},
		{
			name:          "Context canceled",
			cancelContext: true,
			expectedError: context.Canceled.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, withdrawalRepo, balanceRepo, payments := NewMock(t)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if tt.cancelContext {
				cancel()
			}

			w := withdrawal("w-1")
			if tt.payoutCalls > 0 {
				var receipt *payment.Receipt
				if tt.payoutErr == nil {
					receipt = &payment.Receipt{ID: "rcpt-1", Method: w.Method, Amount: w.Amount, ProcessedAt: processedAt}
				}
				payments.EXPECT().Payout(gomock.Any(), payment.PayoutRequest{
					WithdrawalID: "w-1",
					UserID:       "user-1",
					Amount:       25,
					Method:       payment.MethodPayPal,
					Account:      "reader@example.com",
				}).Return(receipt, tt.payoutErr).Times(tt.payoutCalls)
			}
			if tt.expectedStatus != "" {
				withdrawalRepo.EXPECT().UpdateStatus(gomock.Any(), "w-1", tt.expectedStatus, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, _ string, at time.Time) error {
						if tt.expectedStatus == domain.WithdrawalProcessed {
							assert.Equal(t, processedAt, at)
						}
						return tt.updateErr
					})
			}
			if tt.expectedStatus == domain.WithdrawalFailed {
				balanceRepo.EXPECT().UpdateBalance(gomock.Any(), "user-1", 25.0).
					Return(&domain.Balance{UserID: "user-1", Current: 25}, tt.refundErr)
			}

			err := service.handleWithdrawal(ctx, w)
			if tt.expectedError != "" {
				assert.EqualError(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestService_handleWithdrawal_RecoversAfterRetry(t *testing.T) {
	service, withdrawalRepo, _, payments := NewMock(t)

	gomock.InOrder(
		payments.EXPECT().Payout(gomock.Any(), gomock.Any()).Return(nil, errors.New("temporary")),
		payments.EXPECT().Payout(gomock.Any(), gomock.Any()).Return(&payment.Receipt{ID: "rcpt-2", ProcessedAt: time.Now()}, nil),
	)
	withdrawalRepo.EXPECT().UpdateStatus(gomock.Any(), "w-9", domain.WithdrawalProcessed, gomock.Any()).Return(nil)

	assert.NoError(t, service.handleWithdrawal(context.Background(), withdrawal("w-9")))
}

package kvrepo

import (
	"context"
	"sort"
	"time"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
)

type WithdrawalRepository struct {
	withdrawals *collection[domain.Withdrawal]
}

func newWithdrawalRepository(withdrawals *collection[domain.Withdrawal]) *WithdrawalRepository {
	return &WithdrawalRepository{withdrawals: withdrawals}
}

func (r *WithdrawalRepository) CreateWithdrawal(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error) {
	err := r.withdrawals.update(ctx, func(withdrawals []domain.Withdrawal) ([]domain.Withdrawal, error) {
		return append(withdrawals, *withdrawal), nil
	})
	if err != nil {
		return nil, err
	}
	return withdrawal, nil
}

func (r *WithdrawalRepository) GetWithdrawalsByUserID(ctx context.Context, userID string) ([]domain.Withdrawal, error) {
	withdrawals, err := r.withdrawals.load(ctx)
	if err != nil {
		return nil, err
	}
	result := []domain.Withdrawal{}
	for _, w := range withdrawals {
		if w.UserID == userID {
			result = append(result, w)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].RequestedAt.After(result[j].RequestedAt)
	})
	return result, nil
}

func (r *WithdrawalRepository) FindForProcessing(ctx context.Context, limit uint32) ([]domain.Withdrawal, error) {
	withdrawals, err := r.withdrawals.load(ctx)
	if err != nil {
		return nil, err
	}
	result := []domain.Withdrawal{}
	for _, w := range withdrawals {
		if w.Status == domain.WithdrawalPending {
			result = append(result, w)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].RequestedAt.Before(result[j].RequestedAt)
	})
	if uint32(len(result)) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *WithdrawalRepository) UpdateStatus(ctx context.Context, withdrawalID, status string, processedAt time.Time) error {
	return r.withdrawals.update(ctx, func(withdrawals []domain.Withdrawal) ([]domain.Withdrawal, error) {
		for i := range withdrawals {
			if withdrawals[i].ID == withdrawalID {
				withdrawals[i].Status = status
				withdrawals[i].ProcessedAt = &processedAt
				break
			}
		}
		return withdrawals, nil
	})
}

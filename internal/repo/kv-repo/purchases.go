package kvrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
)

var errEbookMissing = errors.New("ebook not found")

type PurchaseRepository struct {
	purchases *collection[domain.Purchase]
}

func newPurchaseRepository(purchases *collection[domain.Purchase]) *PurchaseRepository {
	return &PurchaseRepository{purchases: purchases}
}

func (r *PurchaseRepository) CreatePurchase(ctx context.Context, purchase *domain.Purchase) (*domain.Purchase, error) {
	err := r.purchases.update(ctx, func(purchases []domain.Purchase) ([]domain.Purchase, error) {
		for _, p := range purchases {
			if p.UserID == purchase.UserID && p.EbookID == purchase.EbookID {
				return nil, domain.ErrAlreadyOwned
			}
		}
		return append(purchases, *purchase), nil
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

func (r *PurchaseRepository) HasPurchase(ctx context.Context, userID, ebookID string) (bool, error) {
	purchases, err := r.purchases.load(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range purchases {
		if p.UserID == userID && p.EbookID == ebookID {
			return true, nil
		}
	}
	return false, nil
}

func (r *PurchaseRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	purchases, err := r.purchases.load(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, p := range purchases {
		if p.UserID == userID {
			count++
		}
	}
	return count, nil
}

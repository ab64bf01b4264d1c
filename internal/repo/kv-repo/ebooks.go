package kvrepo

import (
	"context"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
)

type EbookRepository struct {
	ebooks    *collection[domain.Ebook]
	purchases *collection[domain.Purchase]
}

func newEbookRepository(ebooks *collection[domain.Ebook], purchases *collection[domain.Purchase]) *EbookRepository {
	return &EbookRepository{ebooks: ebooks, purchases: purchases}
}

func (r *EbookRepository) filter(ctx context.Context, keep func(e domain.Ebook) bool) ([]domain.Ebook, error) {
	ebooks, err := r.ebooks.load(ctx)
	if err != nil {
		return nil, err
	}
	result := []domain.Ebook{}
	for _, e := range ebooks {
		if keep(e) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *EbookRepository) FindAll(ctx context.Context) ([]domain.Ebook, error) {
	return r.ebooks.load(ctx)
}

func (r *EbookRepository) FindByAuthor(ctx context.Context, authorID string) ([]domain.Ebook, error) {
	return r.filter(ctx, func(e domain.Ebook) bool { return e.AuthorID == authorID })
}

// FindPurchasedBy joins the user's receipts to the catalogue. Each listing appears once.
func (r *EbookRepository) FindPurchasedBy(ctx context.Context, userID string) ([]domain.Ebook, error) {
	purchases, err := r.purchases.load(ctx)
	if err != nil {
		return nil, err
	}
	owned := make(map[string]struct{})
	for _, p := range purchases {
		if p.UserID == userID {
			owned[p.EbookID] = struct{}{}
		}
	}
	return r.filter(ctx, func(e domain.Ebook) bool {
		_, ok := owned[e.ID]
		return ok
	})
}

func (r *EbookRepository) FindByID(ctx context.Context, ebookID string) (*domain.Ebook, error) {
	ebooks, err := r.filter(ctx, func(e domain.Ebook) bool { return e.ID == ebookID })
	if err != nil || len(ebooks) == 0 {
		return nil, err
	}
	return &ebooks[0], nil
}

func (r *EbookRepository) Create(ctx context.Context, ebook *domain.Ebook) (*domain.Ebook, error) {
	err := r.ebooks.update(ctx, func(ebooks []domain.Ebook) ([]domain.Ebook, error) {
		return append(ebooks, *ebook), nil
	})
	if err != nil {
		return nil, err
	}
	return ebook, nil
}

func (r *EbookRepository) IncrementDownloads(ctx context.Context, ebookID string) error {
	return r.ebooks.update(ctx, func(ebooks []domain.Ebook) ([]domain.Ebook, error) {
		for i := range ebooks {
			if ebooks[i].ID == ebookID {
				ebooks[i].Downloads++
				return ebooks, nil
			}
		}
		return nil, errEbookMissing
	})
}

func (r *EbookRepository) Count(ctx context.Context) (int, error) {
	ebooks, err := r.ebooks.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(ebooks), nil
}

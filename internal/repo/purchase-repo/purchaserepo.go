package purchaserepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
	"github.com/GlebRadaev/ebookmarket/internal/pg"
)

const uniqueViolation = "23505"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) CreatePurchase(ctx context.Context, purchase *domain.Purchase) (*domain.Purchase, error) {
	query := `
		INSERT INTO purchases (id, ebook_id, user_id, purchase_date, price, currency)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, purchase.ID, purchase.EbookID, purchase.UserID, purchase.PurchaseDate, purchase.Price, purchase.Currency)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrAlreadyOwned
		}
		zap.L().Error("can't save purchase", zap.Error(err))
		return nil, err
	}
	return purchase, nil
}

func (r *Repository) HasPurchase(ctx context.Context, userID, ebookID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM purchases WHERE user_id = $1 AND ebook_id = $2)`
	if err := r.db.QueryRow(ctx, query, userID, ebookID).Scan(&exists); err != nil {
		zap.L().Error("can't check purchase", zap.Error(err))
		return false, err
	}
	return exists, nil
}

func (r *Repository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM purchases WHERE user_id = $1`, userID).Scan(&count); err != nil {
		zap.L().Error("can't count purchases", zap.Error(err))
		return 0, err
	}
	return count, nil
}

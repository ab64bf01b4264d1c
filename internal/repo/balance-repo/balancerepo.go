package balancerepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
	"github.com/GlebRadaev/ebookmarket/internal/pg"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, TxManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: TxManager,
	}
}

// GetBalance returns the spendable balance and the total of withdrawals that did not fail.
func (r *Repository) GetBalance(ctx context.Context, userID string) (*domain.Balance, error) {
	query := `
        SELECT u.id, u.balance, COALESCE(SUM(w.amount), 0)
        FROM users u
        LEFT JOIN withdrawals w ON w.user_id = u.id AND w.status <> 'FAILED'
        WHERE u.id = $1
        GROUP BY u.id, u.balance
    `
	row := r.db.QueryRow(ctx, query, userID)
	var balance domain.Balance
	err := row.Scan(&balance.UserID, &balance.Current, &balance.Withdrawn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get user balance", zap.Error(err))
		return nil, err
	}
	return &balance, nil
}

// LockBalance reads the stored balance and holds the user row lock until the
// surrounding transaction ends.
func (r *Repository) LockBalance(ctx context.Context, userID string) (*domain.Balance, error) {
	query := `
		SELECT id, balance
		FROM users
		WHERE id = $1
		FOR UPDATE
	`
	var balance domain.Balance
	err := r.db.QueryRow(ctx, query, userID).Scan(&balance.UserID, &balance.Current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to lock user balance", zap.Error(err))
		return nil, err
	}
	return &balance, nil
}

// UpdateBalance adds delta to the stored balance. Negative results are allowed.
func (r *Repository) UpdateBalance(ctx context.Context, userID string, delta float64) (*domain.Balance, error) {
	updated := domain.Balance{UserID: userID}
	query := `
		UPDATE users
		SET balance = balance + $1
		WHERE id = $2
		RETURNING balance
	`
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, query, delta, userID).Scan(&updated.Current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotAuthenticated
			}
			zap.L().Error("failed to update user balance", zap.Error(err))
			return err
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &updated, nil
}

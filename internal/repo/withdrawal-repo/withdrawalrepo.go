package withdrawalrepo

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
	"github.com/GlebRadaev/ebookmarket/internal/pg"
)

const withdrawalColumns = `id, user_id, amount, method, account, status, requested_at, processed_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) CreateWithdrawal(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error) {
	query := `
		INSERT INTO withdrawals (id, user_id, amount, method, account, status, requested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query, withdrawal.ID, withdrawal.UserID, withdrawal.Amount, withdrawal.Method,
		withdrawal.Account, withdrawal.Status, withdrawal.RequestedAt)
	if err != nil {
		zap.L().Error("can't save withdrawal", zap.Error(err))
		return nil, err
	}
	return withdrawal, nil
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]domain.Withdrawal, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	withdrawals := []domain.Withdrawal{}
	for rows.Next() {
		var wd domain.Withdrawal
		err := rows.Scan(&wd.ID, &wd.UserID, &wd.Amount, &wd.Method, &wd.Account, &wd.Status, &wd.RequestedAt, &wd.ProcessedAt)
		if err != nil {
			zap.L().Error("failed to scan withdrawal row", zap.Error(err))
			return nil, err
		}
		withdrawals = append(withdrawals, wd)
	}
	return withdrawals, rows.Err()
}

func (r *Repository) GetWithdrawalsByUserID(ctx context.Context, userID string) ([]domain.Withdrawal, error) {
	query := `
        SELECT ` + withdrawalColumns + `
        FROM withdrawals
        WHERE user_id = $1
        ORDER BY requested_at DESC
    `
	return r.list(ctx, query, userID)
}

// FindForProcessing returns the oldest pending withdrawals first.
func (r *Repository) FindForProcessing(ctx context.Context, limit uint32) ([]domain.Withdrawal, error) {
	query := `
        SELECT ` + withdrawalColumns + `
        FROM withdrawals
        WHERE status = 'PENDING'
        ORDER BY requested_at ASC
        LIMIT $1
    `
	return r.list(ctx, query, int(limit))
}

func (r *Repository) UpdateStatus(ctx context.Context, withdrawalID, status string, processedAt time.Time) error {
	query := `
        UPDATE withdrawals
        SET status = $1, processed_at = $2
        WHERE id = $3
    `
	if _, err := r.db.Exec(ctx, query, status, processedAt, withdrawalID); err != nil {
		zap.L().Error("failed to update withdrawal", zap.Error(err))
		return err
	}
	return nil
}

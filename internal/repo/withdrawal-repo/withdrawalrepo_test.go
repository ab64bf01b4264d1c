package withdrawalrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
)

var columns = []string{"id", "user_id", "amount", "method", "account", "status", "requested_at", "processed_at"}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_CreateWithdrawal(t *testing.T) {
	ctx := context.Background()
	repo, mock := NewMock(t)
	now := time.Now()
	withdrawal := &domain.Withdrawal{
		ID:          "w-1",
		UserID:      "user-1",
		Amount:      25,
		Method:      "stripe",
		Account:     "4242424242424242",
		Status:      domain.WithdrawalPending,
		RequestedAt: now,
	}
	query := regexp.QuoteMeta("INSERT INTO withdrawals (id, user_id, amount, method, account, status, requested_at)")

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Create withdrawal successfully",
			mockSetup: func() {
				mock.ExpectExec(query).
					WithArgs("w-1", "user-1", 25.0, "stripe", "4242424242424242", domain.WithdrawalPending, now).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(query).
					WithArgs("w-1", "user-1", 25.0, "stripe", "4242424242424242", domain.WithdrawalPending, now).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.CreateWithdrawal(ctx, withdrawal)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, withdrawal, result)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_GetWithdrawalsByUserID(t *testing.T) {
	ctx := context.Background()
	repo, mock := NewMock(t)
	now := time.Now()
	processedAt := now.Add(time.Minute)
	query := regexp.QuoteMeta("FROM withdrawals WHERE user_id = $1 ORDER BY requested_at DESC")

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    []domain.Withdrawal
	}{
		{
			name: "Newest first",
			mockSetup: func() {
				rows := pgxmock.NewRows(columns).
					AddRow("w-2", "user-1", 15.0, "paypal", "", domain.WithdrawalPending, now, nil).
					AddRow("w-1", "user-1", 25.0, "stripe", "", domain.WithdrawalProcessed, now.Add(-time.Hour), &processedAt)
				mock.ExpectQuery(query).WithArgs("user-1").WillReturnRows(rows)
			},
			result: []domain.Withdrawal{
				{ID: "w-2", UserID: "user-1", Amount: 15, Method: "paypal", Status: domain.WithdrawalPending, RequestedAt: now},
				{ID: "w-1", UserID: "user-1", Amount: 25, Method: "stripe", Status: domain.WithdrawalProcessed, RequestedAt: now.Add(-time.Hour), ProcessedAt: &processedAt},
			},
		},
		{
			name: "No withdrawals",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("user-1").WillReturnRows(pgxmock.NewRows(columns))
			},
			result: []domain.Withdrawal{},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("user-1").WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetWithdrawalsByUserID(ctx, "user-1")
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindForProcessing(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	rows := pgxmock.NewRows(columns).
		AddRow("w-1", "user-1", 25.0, "bank", "", domain.WithdrawalPending, now, nil)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = 'PENDING' ORDER BY requested_at ASC LIMIT $1")).
		WithArgs(1000).
		WillReturnRows(rows)

	result, err := repo.FindForProcessing(context.Background(), 1000)
	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, "w-1", result[0].ID)
	assert.Nil(t, result[0].ProcessedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := NewMock(t)
	processedAt := time.Now()
	query := regexp.QuoteMeta("UPDATE withdrawals SET status = $1, processed_at = $2 WHERE id = $3")

	mock.ExpectExec(query).
		WithArgs(domain.WithdrawalProcessed, processedAt, "w-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	assert.NoError(t, repo.UpdateStatus(context.Background(), "w-1", domain.WithdrawalProcessed, processedAt))

	mock.ExpectExec(query).
		WithArgs(domain.WithdrawalFailed, processedAt, "w-2").
		WillReturnError(errors.New("database error"))
	assert.Error(t, repo.UpdateStatus(context.Background(), "w-2", domain.WithdrawalFailed, processedAt))

	assert.NoError(t, mock.ExpectationsWereMet())
}

package pg

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func NewMock(t *testing.T) (*DB, *TxManager, pgxmock.PgxPoolIface) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)

	return New(mockPool), NewTXManager(mockPool), mockPool
}

func TestTxManager_Begin(t *testing.T) {
	db, txManager, mock := NewMock(t)

	tests := []struct {
		name        string
		prepareMock func()
		fn          func(ctx context.Context) error
		expectedErr bool
	}{
		{
			name: "Commit on success",
			prepareMock: func() {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET balance = balance + $1 WHERE id = $2")).
					WithArgs(10.0, "user-1").
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectCommit()
			},
			fn: func(ctx context.Context) error {
				_, err := db.Exec(ctx, "UPDATE users SET balance = balance + $1 WHERE id = $2", 10.0, "user-1")
				return err
			},
			expectedErr: false,
		},
		{
			name: "Rollback on error",
			prepareMock: func() {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn: func(ctx context.Context) error {
				return errors.New("fn error")
			},
			expectedErr: true,
		},
		{
			name: "Begin error",
			prepareMock: func() {
				mock.ExpectBegin().WillReturnError(errors.New("begin error"))
			},
			fn: func(ctx context.Context) error {
				t.Error("fn must not run without a transaction")
				return nil
			},
			expectedErr: true,
		},
		{
			name: "Nested call joins outer transaction",
			prepareMock: func() {
				mock.ExpectBegin()
				mock.ExpectCommit()
			},
			fn: func(ctx context.Context) error {
				return txManager.Begin(ctx, func(ctx context.Context) error {
					return nil
				})
			},
			expectedErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			err := txManager.Begin(context.Background(), tt.fn)
			if tt.expectedErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDB_QueryRowWithoutTransaction(t *testing.T) {
	db, _, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT balance FROM users WHERE id = $1")).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(42.5))

	var balance float64
	err := db.QueryRow(context.Background(), "SELECT balance FROM users WHERE id = $1", "user-1").Scan(&balance)

	assert.NoError(t, err)
	assert.Equal(t, 42.5, balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

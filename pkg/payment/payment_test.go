package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulator_Charge(t *testing.T) {
	simulator := NewSimulator(0)

	tests := []struct {
		name        string
		req         ChargeRequest
		expectedErr error
	}{
		{
			name: "Stripe charge",
			req:  ChargeRequest{UserID: "user-1", Amount: 29.99, Currency: "USD", Method: MethodStripe},
		},
		{
			name: "PayPal charge",
			req:  ChargeRequest{UserID: "user-1", Amount: 5, Currency: "USD", Method: MethodPayPal},
		},
		{
			name:        "Missing method",
			req:         ChargeRequest{UserID: "user-1", Amount: 5},
			expectedErr: ErrMethodRequired,
		},
		{
			name:        "Bank is payout only",
			req:         ChargeRequest{UserID: "user-1", Amount: 5, Method: MethodBank},
			expectedErr: ErrUnsupportedMethod,
		},
		{
			name:        "Negative amount",
			req:         ChargeRequest{UserID: "user-1", Amount: -1, Method: MethodStripe},
			expectedErr: ErrDeclined,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			receipt, err := simulator.Charge(context.Background(), tt.req)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, receipt)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, receipt.ID)
			assert.Equal(t, tt.req.Amount, receipt.Amount)
			assert.Equal(t, tt.req.Method, receipt.Method)
		})
	}
}

func TestSimulator_Payout(t *testing.T) {
	simulator := NewSimulator(0)

	receipt, err := simulator.Payout(context.Background(), PayoutRequest{WithdrawalID: "w-1", Amount: 10, Method: MethodBank})
	require.NoError(t, err)
	assert.Equal(t, MethodBank, receipt.Method)

	_, err = simulator.Payout(context.Background(), PayoutRequest{WithdrawalID: "w-2", Amount: 0, Method: MethodBank})
	assert.ErrorIs(t, err, ErrDeclined)

	_, err = simulator.Payout(context.Background(), PayoutRequest{WithdrawalID: "w-3", Amount: 10, Method: "crypto"})
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestSimulator_DelayHonoursContext(t *testing.T) {
	simulator := NewSimulator(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := simulator.Charge(ctx, ChargeRequest{Amount: 5, Method: MethodStripe})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestValidatePayoutMethod(t *testing.T) {
	assert.NoError(t, ValidatePayoutMethod(MethodStripe))
	assert.NoError(t, ValidatePayoutMethod(MethodPayPal))
	assert.NoError(t, ValidatePayoutMethod(MethodBank))
	assert.ErrorIs(t, ValidatePayoutMethod(""), ErrMethodRequired)
	assert.ErrorIs(t, ValidatePayoutMethod("cash"), ErrUnsupportedMethod)
}

func TestSimulator_Refund(t *testing.T) {
	simulator := NewSimulator(0)

	receipt, err := simulator.Charge(context.Background(), ChargeRequest{UserID: "user-1", Amount: 14.99, Method: MethodPayPal})
	require.NoError(t, err)
	assert.NoError(t, simulator.Refund(context.Background(), receipt))

	assert.ErrorIs(t, simulator.Refund(context.Background(), nil), ErrUnknownReceipt)
	assert.ErrorIs(t, simulator.Refund(context.Background(), &Receipt{}), ErrUnknownReceipt)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewSimulator(time.Second).Refund(ctx, receipt), context.Canceled)
}

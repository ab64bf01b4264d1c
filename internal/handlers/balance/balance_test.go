package balance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
	"github.com/GlebRadaev/ebookmarket/internal/dto"
	balanceservice "github.com/GlebRadaev/ebookmarket/internal/service/balanceservice"
	"github.com/GlebRadaev/ebookmarket/pkg/auth"
	"github.com/GlebRadaev/ebookmarket/pkg/inflight"
	"github.com/GlebRadaev/ebookmarket/pkg/payment"
)

func NewMock(t *testing.T) (*BalanceHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func userContext() context.Context {
	return context.WithValue(context.Background(), auth.UserIDKey, "user-1")
}

func TestGetBalanceHandler(t *testing.T) {
	handler, service := NewMock(t)
	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedBody dto.BalanceResponseDTO
	}{
		{
			name: "Successful retrieval",
			prepareMock: func() {
				service.EXPECT().GetBalance(gomock.Any(), "user-1").Return(&domain.Balance{
					UserID:    "user-1",
					Current:   100.50,
					Withdrawn: 50.25,
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.BalanceResponseDTO{
				Current:   100.50,
				Withdrawn: 50.25,
			},
		},
		{
			name: "Unknown user",
			prepareMock: func() {
				service.EXPECT().GetBalance(gomock.Any(), "user-1").Return(nil, domain.ErrNotAuthenticated)
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().GetBalance(gomock.Any(), "user-1").Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodGet, "/api/user/balance", nil).WithContext(userContext())
			w := httptest.NewRecorder()
			handler.GetBalance(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var resp dto.BalanceResponseDTO
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, tt.expectedBody, resp)
			}
		})
	}
}

func TestWithdrawHandler(t *testing.T) {
	handler, service := NewMock(t)
	requestedAt := time.Date(2024, 3, 10, 16, 9, 57, 0, time.UTC)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful withdrawal",
			body: `{"amount":25,"method":"stripe","account":"4242424242424242"}`,
			prepareMock: func() {
				service.EXPECT().Withdraw(gomock.Any(), "user-1", 25.0, "stripe", "4242424242424242").Return(&domain.Withdrawal{
					ID:          "w-1",
					UserID:      "user-1",
					Amount:      25,
					Method:      "stripe",
					Status:      domain.WithdrawalPending,
					RequestedAt: requestedAt,
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid request body",
			body:         `{"amount":`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Insufficient balance",
			body: `{"amount":500,"method":"paypal"}`,
			prepareMock: func() {
				service.EXPECT().Withdraw(gomock.Any(), "user-1", 500.0, "paypal", "").Return(nil, balanceservice.ErrInsufficientBalance)
			},
			expectedCode: http.StatusPaymentRequired,
		},
		{
			name: "Below minimum",
			body: `{"amount":9.99,"method":"paypal"}`,
			prepareMock: func() {
				service.EXPECT().Withdraw(gomock.Any(), "user-1", 9.99, "paypal", "").Return(nil, balanceservice.ErrBelowMinimum)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Method required",
			body: `{"amount":20}`,
			prepareMock: func() {
				service.EXPECT().Withdraw(gomock.Any(), "user-1", 20.0, "", "").Return(nil, payment.ErrMethodRequired)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Internal server error",
			body: `{"amount":20,"method":"bank"}`,
			prepareMock: func() {
				service.EXPECT().Withdraw(gomock.Any(), "user-1", 20.0, "bank", "").Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/user/balance/withdraw", bytes.NewBufferString(tt.body)).WithContext(userContext())
			w := httptest.NewRecorder()
			handler.Withdraw(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var resp dto.WithdrawalResponseDTO
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, "w-1", resp.ID)
				assert.Equal(t, domain.WithdrawalPending, resp.Status)
			}
		})
	}
}

func TestWithdrawHandler_InFlight(t *testing.T) {
	handler, service := NewMock(t)

	release, err := handler.guard.Acquire(inflight.Key("user-1", withdrawForm))
	assert.NoError(t, err)

	service.EXPECT().Withdraw(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	r := httptest.NewRequest(http.MethodPost, "/api/user/balance/withdraw", bytes.NewBufferString(`{"amount":25,"method":"paypal"}`)).WithContext(userContext())
	w := httptest.NewRecorder()
	handler.Withdraw(w, r)
	assert.Equal(t, http.StatusConflict, w.Code)

	release()
	service.EXPECT().Withdraw(gomock.Any(), "user-1", 25.0, "paypal", "").Return(&domain.Withdrawal{ID: "w-2"}, nil)
	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodPost, "/api/user/balance/withdraw", bytes.NewBufferString(`{"amount":25,"method":"paypal"}`)).WithContext(userContext())
	handler.Withdraw(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetWithdrawalsHandler(t *testing.T) {
	handler, service := NewMock(t)
	requestedAt := time.Date(2024, 3, 10, 16, 9, 57, 0, time.UTC)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name: "Withdrawals found",
			prepareMock: func() {
				service.EXPECT().GetWithdrawals(gomock.Any(), "user-1").Return([]domain.Withdrawal{
					{ID: "w-2", Amount: 10, Method: "bank", Status: domain.WithdrawalPending, RequestedAt: requestedAt},
					{ID: "w-1", Amount: 25, Method: "stripe", Status: domain.WithdrawalProcessed, RequestedAt: requestedAt.Add(-time.Hour)},
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  2,
		},
		{
			name: "No withdrawals",
			prepareMock: func() {
				service.EXPECT().GetWithdrawals(gomock.Any(), "user-1").Return([]domain.Withdrawal{}, nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().GetWithdrawals(gomock.Any(), "user-1").Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodGet, "/api/user/withdrawals", nil).WithContext(userContext())
			w := httptest.NewRecorder()
			handler.GetWithdrawals(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var resp []dto.WithdrawalResponseDTO
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Len(t, resp, tt.expectedLen)
				assert.Equal(t, "w-2", resp[0].ID)
			}
		})
	}
}

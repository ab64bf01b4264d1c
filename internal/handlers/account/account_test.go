package account

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GlebRadaev/ebookmarket/internal/domain"
	"github.com/GlebRadaev/ebookmarket/internal/dto"
	"github.com/GlebRadaev/ebookmarket/internal/service/accountservice"
	"github.com/GlebRadaev/ebookmarket/pkg/auth"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*AccountHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func userContext() context.Context {
	ctx := context.WithValue(context.Background(), auth.UserIDKey, "user-1")
	return context.WithValue(ctx, auth.SessionIDKey, "session-1")
}

func TestMeHandler(t *testing.T) {
	handler, service := NewMock(t)
	createdAt := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedBody dto.UserResponseDTO
	}{
		{
			name: "Successful retrieval",
			prepareMock: func() {
				service.EXPECT().GetUser(gomock.Any(), "user-1").Return(&domain.User{
					ID:           "user-1",
					Nickname:     "reader",
					Email:        "reader@example.com",
					PasswordHash: "hash",
					Balance:      20.99,
					Subscription: domain.TierBasic,
					CreatedAt:    createdAt,
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.UserResponseDTO{
				ID:           "user-1",
				Nickname:     "reader",
				Email:        "reader@example.com",
				Balance:      20.99,
				Subscription: "basic",
				CreatedAt:    createdAt,
			},
		},
		{
			name: "User not found",
			prepareMock: func() {
				service.EXPECT().GetUser(gomock.Any(), "user-1").Return(nil, domain.ErrNotAuthenticated)
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().GetUser(gomock.Any(), "user-1").Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodGet, "/api/user/me", nil).WithContext(userContext())
			w := httptest.NewRecorder()
			handler.Me(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.UserResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, tt.expectedBody, body)
				assert.NotContains(t, w.Body.String(), "hash")
			}
		})
	}
}

func TestUpdateProfileHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful update",
			body: `{"nickname":"writer","email":"writer@example.com"}`,
			prepareMock: func() {
				service.EXPECT().UpdateProfile(gomock.Any(), "user-1", "writer", "writer@example.com").
					Return(&domain.User{ID: "user-1", Nickname: "writer", Email: "writer@example.com"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid request body",
			body:          `{"nickname":`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:          "Invalid email",
			body:          `{"nickname":"writer","email":"not-an-email"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Email",
		},
		{
			name: "Email already registered",
			body: `{"nickname":"writer","email":"taken@example.com"}`,
			prepareMock: func() {
				service.EXPECT().UpdateProfile(gomock.Any(), "user-1", "writer", "taken@example.com").
					Return(nil, domain.ErrDuplicateEmail)
			},
			expectedCode:  http.StatusConflict,
			expectedError: domain.ErrDuplicateEmail.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPut, "/api/user/profile", bytes.NewBufferString(tt.body)).WithContext(userContext())
			w := httptest.NewRecorder()
			handler.UpdateProfile(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestChangePasswordHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful change",
			body: `{"currentPassword":"secret1","newPassword":"secret2","confirmPassword":"secret2"}`,
			prepareMock: func() {
				service.EXPECT().ChangePassword(gomock.Any(), "user-1", "secret1", "secret2", "secret2").Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Missing fields",
			body:          `{"currentPassword":"secret1"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "NewPassword",
		},
		{
			name: "Passwords do not match",
			body: `{"currentPassword":"secret1","newPassword":"secret2","confirmPassword":"secret3"}`,
			prepareMock: func() {
				service.EXPECT().ChangePassword(gomock.Any(), "user-1", "secret1", "secret2", "secret3").
					Return(accountservice.ErrPasswordMismatch)
			},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: accountservice.ErrPasswordMismatch.Error(),
		},
		{
			name: "Wrong current password",
			body: `{"currentPassword":"wrong","newPassword":"secret2","confirmPassword":"secret2"}`,
			prepareMock: func() {
				service.EXPECT().ChangePassword(gomock.Any(), "user-1", "wrong", "secret2", "secret2").
					Return(domain.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPut, "/api/user/password", bytes.NewBufferString(tt.body)).WithContext(userContext())
			w := httptest.NewRecorder()
			handler.ChangePassword(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestDeleteAccountHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful deletion",
			prepareMock: func() {
				service.EXPECT().DeleteAccount(gomock.Any(), "user-1", "session-1").Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().DeleteAccount(gomock.Any(), "user-1", "session-1").Return(errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodDelete, "/api/user", nil).WithContext(userContext())
			w := httptest.NewRecorder()
			handler.DeleteAccount(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

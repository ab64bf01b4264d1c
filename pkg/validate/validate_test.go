package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCardNumber(t *testing.T) {
	tests := []struct {
		name     string
		number   string
		expected bool
	}{
		{name: "Valid card number", number: "4242424242424242", expected: true},
		{name: "Valid short number", number: "2377225624", expected: true},
		{name: "Grouped with spaces", number: "4242 4242 4242 4242", expected: true},
		{name: "Grouped with dashes", number: "4242-4242-4242-4242", expected: true},
		{name: "Invalid checksum", number: "4242424242424241", expected: false},
		{name: "Not a number", number: "card", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsCardNumber(tt.number))
		})
	}
}

type signup struct {
	Nickname string  `json:"nickname" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Method   string  `json:"method" validate:"omitempty,oneof=stripe paypal"`
	Amount   float64 `json:"amount" validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name        string
		input       signup
		expectedErr string
	}{
		{
			name:  "Valid",
			input: signup{Nickname: "reader", Email: "reader@example.com", Password: "secret1"},
		},
		{
			name:        "Missing nickname",
			input:       signup{Email: "reader@example.com", Password: "secret1"},
			expectedErr: "field Nickname is a required field",
		},
		{
			name:        "Bad email and short password",
			input:       signup{Nickname: "reader", Email: "nope", Password: "123"},
			expectedErr: "field Email must be a valid email, field Password must be at least 6",
		},
		{
			name:        "Unknown method",
			input:       signup{Nickname: "reader", Email: "reader@example.com", Password: "secret1", Method: "cash"},
			expectedErr: "field Method must be one of [stripe paypal]",
		},
		{
			name:        "Negative amount",
			input:       signup{Nickname: "reader", Email: "reader@example.com", Password: "secret1", Amount: -1},
			expectedErr: "field Amount must be gte 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if tt.expectedErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.expectedErr)
			}
		})
	}
}

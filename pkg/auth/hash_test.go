package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hashService := NewHashService(bcrypt.MinCost)

	tests := []struct {
		name        string
		password    string
		expectError bool
	}{
		{
			name:        "Valid Password",
			password:    "securepassword",
			expectError: false,
		},
		{
			name:        "Empty Password",
			password:    "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashedPassword, err := hashService.HashPassword(tt.password)

			if tt.expectError {
				assert.ErrorIs(t, err, ErrEmptyPassword)
				assert.Empty(t, hashedPassword)
			} else {
				assert.NoError(t, err)
				assert.NotEqual(t, tt.password, hashedPassword)
			}
		})
	}
}

func TestComparePassword(t *testing.T) {
	hashService := NewHashService(bcrypt.MinCost)
	hashedPassword, err := hashService.HashPassword("securepassword")
	assert.NoError(t, err)

	tests := []struct {
		name        string
		password    string
		expectMatch bool
	}{
		{
			name:        "Matching Password",
			password:    "securepassword",
			expectMatch: true,
		},
		{
			name:        "Non-Matching Password",
			password:    "wrongpassword",
			expectMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := hashService.ComparePassword(hashedPassword, tt.password)
			assert.Equal(t, tt.expectMatch, match)
		})
	}
}

func TestNewHashServiceCostBounds(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewHashService(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewHashService(bcrypt.MaxCost+1).cost)
	assert.Equal(t, bcrypt.MinCost, NewHashService(bcrypt.MinCost).cost)
}

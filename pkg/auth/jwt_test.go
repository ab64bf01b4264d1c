package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func TestGenerateJWT(t *testing.T) {
	jwtService := NewJWTService(testSecret)

	tests := []struct {
		name           string
		userID         string
		sessionID      string
		expirationTime time.Time
		expectError    bool
	}{
		{
			name:           "Valid Token",
			userID:         "user-1",
			sessionID:      "session-1",
			expirationTime: time.Now().Add(time.Hour),
			expectError:    false,
		},
		{
			name:           "Expired Token",
			userID:         "user-1",
			sessionID:      "session-1",
			expirationTime: time.Now().Add(-time.Hour),
			expectError:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwtService.GenerateJWT(tt.userID, tt.sessionID, tt.expirationTime)

			if tt.expectError {
				assert.Error(t, err)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
			}
		})
	}
}

func TestValidateToken(t *testing.T) {
	jwtService := NewJWTService(testSecret)

	tests := []struct {
		name        string
		tokenString string
		setup       func() string
		expectError error
	}{
		{
			name: "Valid Token",
			setup: func() string {
				token, _ := jwtService.GenerateJWT("user-1", "session-1", time.Now().Add(time.Hour))
				return token
			},
		},
		{
			name:        "Invalid Token",
			tokenString: "invalid.token.string",
			expectError: ErrInvalidToken,
		},
		{
			name: "Expired Token",
			setup: func() string {
				token, _ := jwtService.GenerateJWT("user-1", "session-1", time.Now().Add(-time.Hour))
				return token
			},
			expectError: ErrInvalidToken,
		},
		{
			name: "Foreign Secret",
			setup: func() string {
				token, _ := NewJWTService("other-secret").GenerateJWT("user-1", "session-1", time.Now().Add(time.Hour))
				return token
			},
			expectError: ErrInvalidToken,
		},
		{
			name: "Missing Session Claim",
			setup: func() string {
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
					UserID: "user-1",
					StandardClaims: jwt.StandardClaims{
						ExpiresAt: time.Now().Add(time.Hour).Unix(),
						Issuer:    issuer,
					},
				})
				signedToken, _ := token.SignedString([]byte(testSecret))
				return signedToken
			},
			expectError: ErrInvalidTokenClaims,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenString := tt.tokenString
			if tt.setup != nil {
				tokenString = tt.setup()
			}

			claims, err := jwtService.ValidateToken(tokenString)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, claims)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "user-1", claims.UserID)
				assert.Equal(t, "session-1", claims.SessionID())
			}
		})
	}
}

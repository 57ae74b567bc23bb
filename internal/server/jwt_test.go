package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonathan/resume-parser/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func setupTestJWTService(_ *testing.T, expirationHours int) *JWTService {
	cfg := &config.JWTConfig{
		Secret:          testJWTSecret,
		ExpirationHours: expirationHours,
	}
	return NewJWTService(cfg)
}

func signClaims(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestJWTService_GenerateToken(t *testing.T) {
	service := setupTestJWTService(t, 24)

	token, err := service.GenerateToken("user-1", "parse")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	assert.Len(t, parts, 3, "JWT should have 3 parts separated by dots")
}

func TestJWTService_ValidateToken_Success(t *testing.T) {
	service := setupTestJWTService(t, 24)

	token, err := service.GenerateToken("user-1", "parse")
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	require.NotNil(t, claims)

	subject, err := claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)
	assert.Equal(t, "parse", claims.Scope)
	assert.NotNil(t, claims.ExpiresAt)
	assert.NotNil(t, claims.IssuedAt)
}

func TestJWTService_ValidateToken_ExpirationHours(t *testing.T) {
	for _, hours := range []int{1, 12, 48} {
		service := setupTestJWTService(t, hours)
		token, err := service.GenerateToken("user-1", "")
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Duration(hours)*time.Hour), claims.ExpiresAt.Time, time.Minute)
	}
}

func TestJWTService_ValidateToken_InvalidSignature(t *testing.T) {
	service := setupTestJWTService(t, 24)
	token := signClaims(t, jwt.SigningMethodHS256, []byte("different-secret-key-for-jwt-signing-minimum-32-bytes"),
		&Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}})

	claims, err := service.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "signature")
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	service := setupTestJWTService(t, 24)
	past := time.Now().Add(-2 * time.Hour)
	token := signClaims(t, jwt.SigningMethodHS256, []byte(testJWTSecret), &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
		},
	})

	claims, err := service.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "expired")
}

func TestJWTService_ValidateToken_WrongAlgorithm(t *testing.T) {
	service := setupTestJWTService(t, 24)
	token := signClaims(t, jwt.SigningMethodHS512, []byte(testJWTSecret),
		&Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}})

	claims, err := service.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_ValidateToken_Malformed(t *testing.T) {
	service := setupTestJWTService(t, 24)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "one part", token: "invalid"},
		{name: "two parts", token: "invalid.token"},
		{name: "four parts", token: "invalid.token.format.extra"},
		{name: "invalid base64", token: "invalid.base64.signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := setupTestJWTService(t, 24)
	token, err := service.GenerateToken("user-9", "")
	require.NoError(t, err)

	principal, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	subject, err := principal.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "user-9", subject)

	_, err = service.AsTokenValidator().ValidateToken("bogus")
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_MissingExpiration(t *testing.T) {
	service := setupTestJWTService(t, 24)
	token := signClaims(t, jwt.SigningMethodHS256, []byte(testJWTSecret),
		&Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}})

	claims, err := service.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", "mbsnyc-api", 1)

	token, err := tm.GenerateToken("ops@mbsnyc.com")
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops@mbsnyc.com", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "mbsnyc-api", claims.Issuer)
	assert.Equal(t, time.Hour, tm.GetExpirationTime())
}

func TestTokenManager_RejectsEmptySubject(t *testing.T) {
	_, err := NewTokenManager("secret", "mbsnyc-api", 1).GenerateToken("")
	assert.ErrorIs(t, err, ErrInvalidClaim)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret", "mbsnyc-api", 1).GenerateToken("ops")
	require.NoError(t, err)

	_, err = NewTokenManager("other", "mbsnyc-api", 1).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongIssuer(t *testing.T) {
	token, err := NewTokenManager("secret", "someone-else", 1).GenerateToken("ops")
	require.NoError(t, err)

	_, err = NewTokenManager("secret", "mbsnyc-api", 1).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Expired(t *testing.T) {
	token, err := NewTokenManager("secret", "mbsnyc-api", -1).GenerateToken("ops")
	require.NoError(t, err)

	_, err = NewTokenManager("secret", "mbsnyc-api", 1).ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_RejectsNonAdminRole(t *testing.T) {
	now := time.Now()
	claims := AdminClaims{
		Role: "viewer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			Issuer:    "mbsnyc-api",
			Subject:   "ops",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenManager("secret", "mbsnyc-api", 1).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidClaim)
}

func TestTimingSafeCompare(t *testing.T) {
	assert.True(t, TimingSafeCompare("abc", "abc"))
	assert.False(t, TimingSafeCompare("abc", "abd"))
}

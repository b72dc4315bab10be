package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateAcceptsGoodToken(t *testing.T) {
	validator, err := NewJWTValidator(JWTConfig{SecretKey: "secret"})
	require.NoError(t, err)

	token := signToken(t, "secret", jwt.MapClaims{
		"sub":   "user-1",
		"name":  "Maria",
		"roles": []interface{}{"admin"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	user, err := validator.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.UserID)
	assert.Equal(t, "Maria", user.Name)
	assert.Equal(t, []string{"admin"}, user.Roles)
}

func TestValidateRejectsBadTokens(t *testing.T) {
	validator, err := NewJWTValidator(JWTConfig{SecretKey: "secret"})
	require.NoError(t, err)

	// wrong secret
	_, err = validator.Validate(signToken(t, "other", jwt.MapClaims{
		"sub": "u", "exp": time.Now().Add(time.Hour).Unix(),
	}))
	assert.Error(t, err)

	// expired
	_, err = validator.Validate(signToken(t, "secret", jwt.MapClaims{
		"sub": "u", "exp": time.Now().Add(-time.Hour).Unix(),
	}))
	assert.Error(t, err)

	// missing subject
	_, err = validator.Validate(signToken(t, "secret", jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}))
	assert.Error(t, err)
}

func TestValidateEnforcesIssuer(t *testing.T) {
	validator, err := NewJWTValidator(JWTConfig{SecretKey: "secret", Issuer: "obras-backend"})
	require.NoError(t, err)

	_, err = validator.Validate(signToken(t, "secret", jwt.MapClaims{
		"sub": "u", "iss": "someone-else", "exp": time.Now().Add(time.Hour).Unix(),
	}))
	assert.Error(t, err)

	_, err = validator.Validate(signToken(t, "secret", jwt.MapClaims{
		"sub": "u", "iss": "obras-backend", "exp": time.Now().Add(time.Hour).Unix(),
	}))
	assert.NoError(t, err)
}

func TestRequiresSecret(t *testing.T) {
	_, err := NewJWTValidator(JWTConfig{})
	assert.Error(t, err)
}

func TestRateLimiterExhaustsAndRefills(t *testing.T) {
	limiter := NewIPRateLimiter(2)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"), "bucket exhausted")

	// other keys have their own bucket
	assert.True(t, limiter.Allow("10.0.0.2"))
}

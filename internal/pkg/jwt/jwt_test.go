package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := DefaultConfig("test-secret")

	token, err := GenerateToken("user-123", "+15551234567", cfg)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, "test-secret")
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.UserID)
	require.Equal(t, "+15551234567", claims.Phone)
	require.Equal(t, "safezone-api", claims.Issuer)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("user-123", "+15551234567", DefaultConfig("secret-a"))
	require.NoError(t, err)

	_, err = ValidateToken(token, "secret-b")
	require.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := &Config{
		Secret:       "test-secret",
		AccessExpiry: -time.Minute,
		Issuer:       "safezone-api",
	}
	token, err := GenerateToken("user-123", "+15551234567", cfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, "test-secret")
	require.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", "test-secret")
	require.Error(t, err)
}

func TestGenerateToken_NilConfig(t *testing.T) {
	_, err := GenerateToken("user-123", "+15551234567", nil)
	require.Error(t, err)
}

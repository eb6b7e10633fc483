package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidate(t *testing.T) {
	token, err := GenerateToken("user-1", "jane@example.com", "citizen", DefaultConfig(testSecret))
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "jane@example.com", claims.Email)
	require.Equal(t, "citizen", claims.Role)
	require.Equal(t, Issuer, claims.Issuer)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("user-1", "jane@example.com", "citizen", DefaultConfig(testSecret))
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	require.Error(t, err)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	cfg := DefaultConfig(testSecret)
	cfg.Issuer = "some-other-service"
	token, err := GenerateToken("user-1", "jane@example.com", "citizen", cfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	require.Error(t, err)
}

func TestValidateToken_WrongAudience(t *testing.T) {
	cfg := DefaultConfig(testSecret)
	cfg.Audience = "some-other-clients"
	token, err := GenerateToken("user-1", "jane@example.com", "citizen", cfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	require.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := DefaultConfig(testSecret)
	cfg.AccessExpiry = -time.Minute
	token, err := GenerateToken("user-1", "jane@example.com", "citizen", cfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, testSecret)
	require.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", testSecret)
	require.Error(t, err)
}

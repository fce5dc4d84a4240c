package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestGenerateAndValidate(t *testing.T) {
	token, err := GenerateAccessToken(42, "user@example.com", "contractor", testSecret, 24)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAccessToken(token, testSecret)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "contractor", claims.Role)
	assert.Equal(t, "user@example.com", claims.Subject)
}

func TestValidateExpiredToken(t *testing.T) {
	token, err := GenerateAccessToken(1, "old@example.com", "client", testSecret, -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateWrongSignature(t *testing.T) {
	token, err := GenerateAccessToken(1, "user@example.com", "client", testSecret, 24)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "a-different-secret")
	assert.ErrorIs(t, err, ErrTokenInvalidSignature)
}

func TestValidateMalformedToken(t *testing.T) {
	_, err := ValidateAccessToken("not.a.token", testSecret)
	assert.Error(t, err)

	_, err = ValidateAccessToken("", testSecret)
	assert.Error(t, err)
}

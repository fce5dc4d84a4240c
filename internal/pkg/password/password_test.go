package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hashed, err := Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hashed)

	assert.True(t, Verify("correct horse battery staple", hashed))
	assert.False(t, Verify("wrong password", hashed))
	assert.False(t, Verify("", hashed))
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("samepassword")
	require.NoError(t, err)
	second, err := Hash("samepassword")
	require.NoError(t, err)

	// bcrypt salts every hash, so two hashes of the same input differ
	assert.NotEqual(t, first, second)
}

func TestValidatePassword(t *testing.T) {
	assert.ErrorIs(t, ValidatePassword("short"), ErrTooShort)
	assert.NoError(t, ValidatePassword("longenough"))
}

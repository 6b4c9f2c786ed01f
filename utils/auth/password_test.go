package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("supersecret1")
	require.NoError(t, err)
	require.NotEqual(t, "supersecret1", hash)

	require.True(t, PasswordMatches(hash, "supersecret1"))
	require.False(t, PasswordMatches(hash, "supersecret2"))
}

func TestHashPasswordRejectsShort(t *testing.T) {
	_, err := HashPassword("short")
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestPasswordMatchesMalformedHash(t *testing.T) {
	require.False(t, PasswordMatches("not-a-bcrypt-hash", "supersecret1"))
}

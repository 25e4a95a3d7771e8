package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshToken(t *testing.T) {
	token, err := NewRefreshToken("user-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "user-1."))

	userID, err := RefreshTokenUserID(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	hash := HashRefreshToken(token)
	assert.True(t, CompareRefreshTokenHash(token, hash))
	assert.False(t, CompareRefreshTokenHash(token+"x", hash))
	assert.False(t, CompareRefreshTokenHash(token, ""))

	for _, bad := range []string{"", "nodot", ".secret", "user."} {
		_, err := RefreshTokenUserID(bad)
		assert.ErrorIs(t, err, ErrMalformedRefreshToken, bad)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	token, expiresAt, err := GenerateJWT("user-1", "ADMIN", "secret", time.Hour, "propease")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "propease", claims.Issuer)

	_, err = ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err)

	expired, _, err := GenerateJWT("user-1", "ADMIN", "secret", -time.Minute, "propease")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(expired, "secret")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.True(t, PasswordMatches(hash, "s3cret!"))
	assert.False(t, PasswordMatches(hash, "wrong"))
	assert.False(t, PasswordMatches("", "anything"))

	_, err = HashPassword("abc")
	assert.Error(t, err)
}

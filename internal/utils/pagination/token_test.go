package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	createdAt := time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(createdAt, "notif-42")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, createdAt, decodedAt)
	assert.Equal(t, "notif-42", decodedID)

	// Non-UTC input comes back as the same instant.
	ist := time.FixedZone("IST", 5*3600+1800)
	local := time.Date(2024, 5, 15, 20, 0, 0, 0, ist)
	decodedAt, _, err = DecodeToken(EncodeToken(local, "x"))
	require.NoError(t, err)
	assert.True(t, local.Equal(decodedAt))
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.URLEncoding.EncodeToString([]byte("2024-05-15T00:00:00Z"))
	_, _, err = DecodeToken(noSeparator)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	emptyID := base64.URLEncoding.EncodeToString([]byte("2024-05-15T00:00:00Z|"))
	_, _, err = DecodeToken(emptyID)
	assert.Error(t, err)

	badDate := base64.URLEncoding.EncodeToString([]byte("notadate|abc"))
	_, _, err = DecodeToken(badDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "created_at parse")
}

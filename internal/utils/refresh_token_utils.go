package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// refreshTokenBytes is the amount of randomness in a refresh token.
const refreshTokenBytes = 32

// ErrMalformedRefreshToken is returned for refresh tokens not issued by NewRefreshToken.
var ErrMalformedRefreshToken = errors.New("malformed refresh token")

// GenerateSecureRandomString generates a cryptographically secure random string of the specified byte length,
// then hex encodes it. For example, lengthInBytes=32 will result in a 64-character hex string.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewRefreshToken returns an opaque refresh token of the form "<userID>.<random>".
// Only its hash is stored, the user prefix lets refresh find the stored hash.
func NewRefreshToken(userID string) (string, error) {
	secret, err := GenerateSecureRandomString(refreshTokenBytes)
	if err != nil {
		return "", err
	}
	return userID + "." + secret, nil
}

// RefreshTokenUserID extracts the user ID prefix of a refresh token.
func RefreshTokenUserID(token string) (string, error) {
	idx := strings.LastIndex(token, ".")
	if idx <= 0 || idx == len(token)-1 {
		return "", ErrMalformedRefreshToken
	}
	return token[:idx], nil
}

// HashRefreshToken generates a SHA256 hash of a refresh token.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CompareRefreshTokenHash compares a plain refresh token with its stored SHA256 hash.
// It's important that the `token` parameter here is the raw token string, not a hash.
func CompareRefreshTokenHash(token string, storedHash string) bool {
	return storedHash != "" && HashRefreshToken(token) == storedHash
}

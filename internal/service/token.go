package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// newToken returns a 64-character hex token from 32 random bytes.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

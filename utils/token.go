package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSessionToken returns a 64-character hex token from 32 bytes of
// cryptographic randomness. Used for judge sessions and reset tokens.
func GenerateSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

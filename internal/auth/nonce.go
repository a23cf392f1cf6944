package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateNonce returns a 32-byte hex-encoded random identifier
func GenerateNonce() (string, error) {
	nonce := make([]byte, 32)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("crypto/rand failed: %w", err)
	}
	return hex.EncodeToString(nonce), nil
}

package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// HashEmail creates a consistent hash for logging without exposing PII
func HashEmail(email string) string {
	hash := sha256.Sum256([]byte(email))
	return hex.EncodeToString(hash[:])[:12]
}

// DecodePathEmail percent-decodes an email taken from a route segment.
func DecodePathEmail(segment string) (string, error) {
	return url.PathUnescape(segment)
}

// EncodePathEmail escapes an email for use as a single path segment, '@' included.
func EncodePathEmail(email string) string {
	return strings.ReplaceAll(url.QueryEscape(email), "+", "%20")
}

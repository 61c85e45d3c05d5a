package idgen

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerateHexID returns length uppercase hexadecimal characters drawn from
// crypto/rand. length must be even.
func GenerateHexID(length int) (string, error) {
	if length <= 0 || length%2 != 0 {
		return "", fmt.Errorf("invalid hex id length %d", length)
	}
	bytes := make([]byte, length/2)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(bytes)), nil
}

// IsHexID reports whether s is exactly length hexadecimal characters.
func IsHexID(s string, length int) bool {
	if len(s) != length {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

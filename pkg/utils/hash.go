package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashString returns the hex SHA-256 digest of input. It is used to derive
// stable, non-reversible analytics ids from contact emails.
func HashString(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

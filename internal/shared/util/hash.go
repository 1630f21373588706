package util

import (
	"crypto/sha256"
	"fmt"
)

// HashUserKey returns a filesystem-safe identifier for a user ID.
func HashUserKey(s string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(s)))
}

package helpers

import (
	"crypto/sha256"
	"fmt"
)

// Sha256 returns the hex encoded SHA256 checksum of an uploaded file.
func Sha256(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}

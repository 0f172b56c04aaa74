package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA-256 digest of data.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// OwnerKey returns a filesystem-safe namespace for an owner ID.
func OwnerKey(ownerID string) string {
	return SHA256Hex([]byte(ownerID))
}

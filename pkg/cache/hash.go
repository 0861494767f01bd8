package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// DocumentKey builds the autosave cache key for a named document. The name
// is hashed so arbitrary document names never produce unsafe keys.
func DocumentKey(name string) string {
	return "document:" + Hash([]byte(name))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

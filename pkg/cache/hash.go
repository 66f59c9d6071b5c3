package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HierarchyKey is the key for a hierarchy diagram rendered from dot in
// format, e.g. "hierarchy:svg:<sha256>".
func HierarchyKey(dot, format string) string {
	return "hierarchy:" + format + ":" + Hash([]byte(dot))
}

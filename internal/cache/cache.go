package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores URL extraction results keyed by source URL
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from a URL
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "claimlens:v1:" + hex.EncodeToString(hash[:])
}

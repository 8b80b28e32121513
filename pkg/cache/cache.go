// Package cache stores rendered artifacts between runs.
//
// A headless render is deterministic: the same configuration, transition
// count and frame scale always produce the same animated PNG. The pipeline
// keys finished files with [Key] and serves repeated renders from the cache
// instead of animating again.
//
// Two implementations are provided: [FileCache] for CLI use and [NullCache]
// when caching is disabled.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Key builds a cache key from a prefix and the JSON encoding of parts.
// The key format is prefix:sha256(parts).
func Key(prefix string, parts ...any) (string, error) {
	data, err := json.Marshal(parts)
	if err != nil {
		return "", fmt.Errorf("cache key %s: %w", prefix, err)
	}
	return prefix + ":" + Hash(data), nil
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

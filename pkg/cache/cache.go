// Package cache provides the expiring key-value stores that memoize the
// server's on-demand fetches, plus the retry machinery shared by every
// HTTP integration.
//
// Backends implement [Cache]: [Memory] for a single process, [Redis] when
// several server instances should share one cache, and [Null] to disable
// caching entirely. Logical resource kinds (readmes, source trees,
// download counts) are kept apart by key prefixes owned by the component
// issuing the fetches, never by package-level singletons.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache is a byte-oriented expiring key-value store.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present
	// and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores it without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Key builds a cache key from a prefix and arbitrary components, hashing
// the components so callers never worry about key length or separators.
func Key(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes the SHA-256 hex digest of data.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Null is a no-op cache that never stores anything. Used when caching is
// disabled.
type Null struct{}

// NewNull creates a null cache.
func NewNull() Cache {
	return &Null{}
}

// Get always reports a miss.
func (c *Null) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (c *Null) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *Null) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (c *Null) Close() error {
	return nil
}

var _ Cache = (*Null)(nil)

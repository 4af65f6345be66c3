// Package cache provides the caching layer shared by the CLI and the API
// server.
//
// Layouts and rendered artifacts are keyed by the hash of their input plus
// the options that shape the output, so an unchanged document never goes
// through layout twice. Backends:
//
//   - FileCache: JSON entries on disk, used by the CLI
//   - MemoryCache: in-process map, used by tests and short-lived servers
//   - RedisCache: shared cache for the API server
//   - NullCache: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with an optional time-to-live.
// A zero TTL means the entry never expires.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Default time-to-live values per entry type.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

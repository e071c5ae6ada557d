// Package cache stores rendered timeline views and artifacts keyed by
// content hashes.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// for the server and [NullCache] when caching is off. Keys come from a
// [Keyer]; [DefaultKeyer] hashes every input that affects the output so a
// changed dataset or option never hits a stale entry.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was present. A missing or
	// expired entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero keeps the entry until it is
	// deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Entry lifetimes.
const (
	TTLView     = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
	TTLSource   = time.Hour
)

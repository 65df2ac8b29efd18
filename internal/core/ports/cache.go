package ports

import (
	"context"
	"time"
)

// Cache is a byte-oriented cache used to decorate read-heavy repositories.
type Cache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key with a TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key from the cache.
	Delete(ctx context.Context, key string) error
}

package nexus

import (
	"context"
	"fmt"
	"time"
)

// Cache stores serialized page results. Implementations bring their
// own backing store, such as Redis or an in-process map.
type Cache interface {
	// Get returns the cached value for key, or nil, nil on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A zero ttl means the value does
	// not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete evicts key.
	Delete(ctx context.Context, key string) error
}

// CacheKey identifies one page of one collection.
type CacheKey struct {
	Table     string
	Condition string
	Limit     int
	Offset    int
}

// String returns the string representation of the cache key.
func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%s:%d:%d", k.Table, k.Condition, k.Limit, k.Offset)
}

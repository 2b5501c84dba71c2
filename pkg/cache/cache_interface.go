package cache

import (
	"context"
	"time"
)

// Cache is the read-through store for derived data such as rendered
// article HTML. Values are JSON encoded; callers treat every error as a
// miss.
type Cache interface {
	// Get unmarshals a hit into dest and returns true. A miss returns
	// false and leaves dest untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}

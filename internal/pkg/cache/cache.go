package cache

import (
	"context"
	"time"
)

// Store is a JSON value cache keyed by string.
type Store interface {
	// Get decodes the cached value into target. found is false on a miss.
	Get(ctx context.Context, key string, target any) (found bool, err error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

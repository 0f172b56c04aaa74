// Package cache stores JSON-encoded values by key with a time-to-live.
package cache

import (
	"context"
	"time"
)

// Cache is a JSON value cache. GetJSON reports whether key was found.
// Implementations treat an unreachable backend as a miss.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Close() error
}

// New returns a redis cache when redisURL is set and reachable, and an
// in-memory cache otherwise.
func New(ctx context.Context, redisURL string, ttl time.Duration) Cache {
	if redisURL != "" {
		if r, err := NewRedis(ctx, redisURL, ttl); err == nil {
			return r
		}
	}
	return NewMemory(ttl, defaultMemoryEntries)
}

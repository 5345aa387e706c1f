// Package cache provides artifact caching for rendered diagrams.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for several serve instances
//   - [NullCache]: caching disabled
//
// Wrap any backend with [Instrument] to report hits, misses and writes to
// the observability cache hooks.
//
// # Keys
//
// A [Keyer] turns content hashes plus render options into cache keys.
// Draw lists are hashed by content (see [Hash]), so two scenes that paint
// the same thing share artifacts. [ScopedKeyer] prefixes every key, e.g.
// with a scene id, when entries must not be shared.
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/stipple/pkg/observability"
)

// Entry lifetimes per stage.
const (
	TTLArtifact = 7 * 24 * time.Hour
	TTLGraph    = 24 * time.Hour
)

// Cache stores opaque byte blobs under string keys.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Fetch is Get with a miss reported as ErrCacheMiss.
func Fetch(ctx context.Context, c Cache, key string) ([]byte, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCacheMiss
	}
	return data, nil
}

// Instrument wraps c so every Get and Set reports to observability.Cache().
func Instrument(c Cache) Cache {
	return &instrumented{Cache: c}
}

type instrumented struct {
	Cache
}

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.Cache.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, key)
		} else {
			observability.Cache().OnCacheMiss(ctx, key)
		}
	}
	return data, ok, err
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
	return nil
}

// Clear forwards to the wrapped cache when it supports clearing.
func (c *instrumented) Clear(ctx context.Context) error {
	if cl, ok := c.Cache.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return nil
}

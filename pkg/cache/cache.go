// Package cache stores rendered layer sets so that re-running the pipeline on
// an unchanged world skips decoding and rendering.
//
// Entries are opaque byte slices addressed by string keys. A [Keyer] derives
// keys from the input hash and every option that affects the output, so a
// changed cell size or rule set never returns stale documents.
//
// Two backends are provided: [FileCache] for the CLI (one JSON file per
// entry under the user cache directory) and [NullCache] for --no-cache runs
// and tests.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get reports a miss with ok == false and a nil error. Implementations treat
// corrupt or expired entries as misses.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

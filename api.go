package asidecache

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/asidecache/codec"
	pr "github.com/unkn0wn-root/asidecache/provider"
)

// DefaultTTL is how long a filled entry lives when Options.TTL is zero.
const DefaultTTL = 60 * 24 * time.Hour

type SetCostFunc func(key string, raw []byte, count int) int64

// Producer returns the canonical collection for one key.
// It may legitimately return an empty collection.
type Producer[T any] func(ctx context.Context) ([]T, error)

// Lookup is the cache-aside API. T is the caller's record type.
type Lookup[T any] interface {
	Enabled() bool
	Close(context.Context) error

	// Fetch returns the cached collection for key, or the producer's result on
	// a miss. Cache faults are absorbed; only a producer failure is returned.
	Fetch(ctx context.Context, key string, produce Producer[T]) ([]T, error)
}

// Options tune the lookup.
// Only Provider is required; others have sensible defaults.
type Options[T any] struct {
	// Required
	Provider pr.Provider

	Codec          c.Codec[[]T]  // nil => JSON
	Namespace      string        // optional prefix: "<ns>:<key>"
	Logger         Logger        // if nil, NopLogger is used
	Hooks          Hooks         // if nil, NopHooks is used
	TTL            time.Duration // 0 => DefaultTTL (60 days)
	MaxDecode      int           // bytes; 0 => unlimited
	ComputeSetCost SetCostFunc   // default 1
	Disabled       bool          // default false (enabled)
}

func New[T any](opts Options[T]) (Lookup[T], error) {
	l, err := newLookup[T](opts)
	if err != nil {
		return nil, err
	}
	return l, nil
}

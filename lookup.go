package asidecache

import (
	"context"
	"fmt"
	"time"

	c "github.com/unkn0wn-root/asidecache/codec"
	pr "github.com/unkn0wn-root/asidecache/provider"
)

// readKind is the outcome of a provider read.
type readKind uint8

const (
	readMiss readKind = iota
	readHit
	readFault
)

type readResult struct {
	kind readKind
	raw  []byte
	err  error
}

// writeKind is the outcome of a provider write.
type writeKind uint8

const (
	writeStored writeKind = iota
	writeRejected
	writeFault
)

type writeResult struct {
	kind writeKind
	err  error
}

type lookup[T any] struct {
	ns             string
	provider       pr.Provider
	codec          c.Codec[[]T]
	log            Logger
	hooks          Hooks
	enabled        bool
	ttl            time.Duration
	computeSetCost SetCostFunc
}

func newLookup[T any](opts Options[T]) (*lookup[T], error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("asidecache: provider is required")
	}
	if opts.TTL < 0 {
		return nil, fmt.Errorf("asidecache: negative ttl %s", opts.TTL)
	}

	l := &lookup[T]{
		ns:       opts.Namespace,
		provider: opts.Provider,
		enabled:  !opts.Disabled,
	}

	// defaults
	if opts.Codec != nil {
		l.codec = opts.Codec
	} else {
		l.codec = c.JSON[[]T]{}
	}
	if opts.MaxDecode > 0 {
		l.codec = c.Limit[[]T]{Inner: l.codec, MaxDecode: opts.MaxDecode}
	}
	l.log = coalesce[Logger](opts.Logger, NopLogger{})
	l.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	l.ttl = coalesce[time.Duration](opts.TTL, DefaultTTL)

	if opts.ComputeSetCost != nil {
		l.computeSetCost = opts.ComputeSetCost
	} else {
		l.computeSetCost = func(_ string, _ []byte, _ int) int64 { return 1 }
	}
	return l, nil
}

func (l *lookup[T]) Enabled() bool { return l.enabled }

func (l *lookup[T]) Close(ctx context.Context) error {
	return l.provider.Close(ctx)
}

func (l *lookup[T]) Fetch(ctx context.Context, key string, produce Producer[T]) ([]T, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	if produce == nil {
		return nil, ErrNilProducer
	}
	k := l.storageKey(key)

	if l.enabled {
		if v, ok := l.readCached(ctx, k); ok {
			return v, nil
		}
	}

	v, err := produce(ctx)
	if err != nil {
		l.log.Warn("source fetch failed", Fields{"key": k, "err": err})
		l.hooks.SourceFault(k, err)
		return nil, &SourceError{Key: key, Err: err}
	}

	if l.enabled {
		// the fill must not be cut short once the source has answered
		l.fill(context.WithoutCancel(ctx), k, v)
	}
	return v, nil
}

// readCached is stage 1. ok=false means "no usable cached value" for any reason.
func (l *lookup[T]) readCached(ctx context.Context, k string) ([]T, bool) {
	r := l.read(ctx, k)
	switch r.kind {
	case readMiss:
		l.log.Debug("cache miss", Fields{"key": k})
		return nil, false
	case readFault:
		l.log.Warn("cache read failed; falling back to source", Fields{"key": k, "err": r.err})
		l.hooks.CacheReadFault(k, r.err)
		return nil, false
	case readHit:
		v, err := l.codec.Decode(r.raw)
		if err != nil {
			l.log.Warn("cached value undecodable; treating as miss", Fields{"key": k, "err": err})
			l.hooks.CacheDecodeFault(k, "decode", err)
			return nil, false
		}
		if len(v) == 0 {
			// never written by fill; consult the source instead of trusting it
			l.log.Debug("cached value empty; treating as miss", Fields{"key": k})
			l.hooks.CacheDecodeFault(k, "empty", nil)
			return nil, false
		}
		return v, true
	default:
		panic(fmt.Sprintf("asidecache: unknown read outcome %d", r.kind))
	}
}

// fill is stage 3. Nothing here may change what Fetch returns.
func (l *lookup[T]) fill(ctx context.Context, k string, v []T) {
	if len(v) == 0 {
		l.log.Debug("empty source result not cached", Fields{"key": k})
		l.hooks.EmptyResultSkipped(k)
		return
	}
	raw, err := l.codec.Encode(v)
	if err != nil {
		l.log.Warn("cache encode failed", Fields{"key": k, "err": err})
		l.hooks.CacheWriteFault(k, "encode", err)
		return
	}
	w := l.write(ctx, k, raw, len(v))
	switch w.kind {
	case writeStored:
		l.log.Debug("cache filled", Fields{"key": k, "count": len(v), "ttl": l.ttl})
	case writeRejected:
		l.log.Debug("cache fill rejected by provider (pressure)", Fields{"key": k})
		l.hooks.ProviderSetRejected(k)
	case writeFault:
		l.log.Warn("cache write failed", Fields{"key": k, "err": w.err})
		l.hooks.CacheWriteFault(k, "provider", w.err)
	}
}

func (l *lookup[T]) read(ctx context.Context, k string) readResult {
	raw, ok, err := l.provider.Get(ctx, k)
	switch {
	case err != nil:
		return readResult{kind: readFault, err: err}
	case !ok:
		return readResult{kind: readMiss}
	default:
		return readResult{kind: readHit, raw: raw}
	}
}

func (l *lookup[T]) write(ctx context.Context, k string, raw []byte, count int) writeResult {
	ok, err := l.provider.Set(ctx, k, raw, l.computeSetCost(k, raw, count), l.ttl)
	switch {
	case err != nil:
		return writeResult{kind: writeFault, err: err}
	case !ok:
		return writeResult{kind: writeRejected}
	default:
		return writeResult{kind: writeStored}
	}
}

func (l *lookup[T]) storageKey(userKey string) string {
	if l.ns == "" {
		return userKey
	}
	// isolate by namespace
	return l.ns + ":" + userKey
}

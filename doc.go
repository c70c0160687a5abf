// Package asidecache implements a read-through, cache-aside lookup of record
// collections in front of a slower authoritative source.
//
// A Fetch consults the Provider first. On a usable hit the decoded collection is
// returned and the source is never touched. On a miss, a provider fault or an
// undecodable entry the Producer is called exactly once; a non-empty result is
// written back with the configured TTL on a best-effort basis.
//
// Components:
//   - Provider: byte store with TTL (e.g. Redis, Ristretto, BigCache, ttlcache).
//   - Codec[[]T]: (de)serializes the collection <-> []byte. JSON by default.
//   - Producer[T]: the authoritative source for one key.
//
// Faults:
//
//	cache read/decode fault  -> logged, treated as miss
//	cache encode/write fault -> logged, result returned unchanged
//	producer fault           -> *SourceError (errors.Is(err, ErrSourceUnavailable))
//
// Usage:
//
//	lk, _ := asidecache.New[Region](asidecache.Options[Region]{Provider: p})
//	regions, err := lk.Fetch(ctx, "region:42", func(ctx context.Context) ([]Region, error) {
//		return repo.ChildrenOf(ctx, 42)
//	})
package asidecache

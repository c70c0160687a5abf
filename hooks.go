package asidecache

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The lookup calls them on hot paths.
type Hooks interface {
	// Provider.Get returned an error; the lookup fell back to the producer.
	CacheReadFault(storageKey string, err error)

	// A stored entry could not be used.
	// reason ∈ {"decode", "empty"}
	CacheDecodeFault(storageKey, reason string, err error)

	// Stage 3 failed; the result was returned anyway.
	// reason ∈ {"encode", "provider"}
	CacheWriteFault(storageKey, reason string, err error)

	// Provider returned ok=false on Set (backpressure/eviction).
	ProviderSetRejected(storageKey string)

	// The producer returned an empty collection; nothing was cached.
	EmptyResultSkipped(storageKey string)

	// The producer failed; Fetch returned a SourceError.
	SourceFault(storageKey string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) CacheReadFault(string, error)           {}
func (NopHooks) CacheDecodeFault(string, string, error) {}
func (NopHooks) CacheWriteFault(string, string, error)  {}
func (NopHooks) ProviderSetRejected(string)             {}
func (NopHooks) EmptyResultSkipped(string)              {}
func (NopHooks) SourceFault(string, error)              {}

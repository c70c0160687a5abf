// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    ReadFaultEvery: 10, // sample logs: ~every 10th read fault
//	})
//
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	lk, _ := asidecache.New[Region](asidecache.Options[Region]{
//	    Provider: provider,
//	    Hooks:    hooks, // or `raw` if you don’t want async
//	})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/asidecache"
)

// Hooks runs inner hooks on background workers. Events are dropped, never
// queued unboundedly, when the workers fall behind.
type Hooks struct {
	inner   asidecache.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

var _ asidecache.Hooks = (*Hooks)(nil)

func New(inner asidecache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events after Close are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default: // drop
		h.dropped.Add(1)
	}
}

func (h *Hooks) CacheReadFault(k string, err error) { h.try(func() { h.inner.CacheReadFault(k, err) }) }
func (h *Hooks) ProviderSetRejected(k string)       { h.try(func() { h.inner.ProviderSetRejected(k) }) }
func (h *Hooks) EmptyResultSkipped(k string)        { h.try(func() { h.inner.EmptyResultSkipped(k) }) }
func (h *Hooks) SourceFault(k string, err error)    { h.try(func() { h.inner.SourceFault(k, err) }) }
func (h *Hooks) CacheDecodeFault(k, r string, err error) {
	h.try(func() { h.inner.CacheDecodeFault(k, r, err) })
}
func (h *Hooks) CacheWriteFault(k, r string, err error) {
	h.try(func() { h.inner.CacheWriteFault(k, r, err) })
}

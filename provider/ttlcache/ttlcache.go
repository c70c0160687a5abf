// Package ttlcache adapts jellydator/ttlcache to provider.Provider. Unlike
// BigCache it honors the per-entry TTL passed by the lookup, so it is the
// in-process choice when the configured TTL must be exact.
package ttlcache

import (
	"context"
	"sync"
	"time"

	tc "github.com/jellydator/ttlcache/v3"

	pr "github.com/unkn0wn-root/asidecache/provider"
)

type Provider struct {
	c         *tc.Cache[string, []byte]
	closeOnce sync.Once
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	Capacity uint64 // 0 = unbounded
}

// New starts the expiry loop; Close stops it.
func New(cfg Config) *Provider {
	opts := []tc.Option[string, []byte]{
		tc.WithDisableTouchOnHit[string, []byte](),
	}
	if cfg.Capacity > 0 {
		opts = append(opts, tc.WithCapacity[string, []byte](cfg.Capacity))
	}
	c := tc.New[string, []byte](opts...)
	go c.Start()
	return &Provider{c: c}
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	it := p.c.Get(key)
	if it == nil || it.IsExpired() {
		return nil, false, nil
	}
	return it.Value(), true, nil
}

func (p *Provider) Set(_ context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = tc.NoTTL
	}
	p.c.Set(key, value, ttl)
	return true, nil
}

func (p *Provider) Close(_ context.Context) error {
	p.closeOnce.Do(p.c.Stop)
	return nil
}

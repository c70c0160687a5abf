package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/unkn0wn-root/asidecache"
	"github.com/unkn0wn-root/asidecache/codec"
	"github.com/unkn0wn-root/asidecache/internal/config"
	zaplog "github.com/unkn0wn-root/asidecache/log/zap"
	"github.com/unkn0wn-root/asidecache/provider"
	"github.com/unkn0wn-root/asidecache/provider/bigcache"
	"github.com/unkn0wn-root/asidecache/provider/redis"
	"github.com/unkn0wn-root/asidecache/provider/ristretto"
	"github.com/unkn0wn-root/asidecache/provider/ttlcache"
	"github.com/unkn0wn-root/asidecache/region"
)

const (
	exitNotFound    = 3
	exitUnavailable = 4
)

type app struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	root := &cobra.Command{
		Use:           "regionlookup",
		Short:         "Look up child regions through a cache-aside store",
		Long:          `Reads child regions of a parent from the cache, falling back to PostgreSQL and refilling the cache on a miss.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := root.PersistentFlags()
	f.StringVar(&a.cfgFile, "config", "", "config file (default ./regionlookup.yaml)")
	f.String("provider", "", "cache provider: redis or none (ristretto, bigcache, ttlcache live only for this process)")
	f.String("codec", "", "cache codec: json, msgpack, cbor")
	f.Duration("ttl", 0, "cache entry ttl")
	f.String("redis-addr", "", "redis address")
	f.String("pg-dsn", "", "postgres dsn")
	f.String("log-level", "", "log level")
	for key, flag := range map[string]string{
		"cache.provider": "provider",
		"cache.codec":    "codec",
		"cache.ttl":      "ttl",
		"redis.addr":     "redis-addr",
		"postgres.dsn":   "pg-dsn",
		"log.level":      "log-level",
	} {
		_ = a.v.BindPFlag(key, f.Lookup(flag))
	}

	root.AddCommand(a.childrenCmd())
	return root
}

func (a *app) load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	return zc.Build()
}

func newProvider(ctx context.Context, cfg *config.Config, logger *zap.Logger) (provider.Provider, error) {
	switch cfg.Cache.Provider {
	case "redis":
		p := redis.Dial(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Timeout)
		if err := p.Ping(ctx); err != nil {
			// not fatal: the lookup serves from the source while redis is down
			logger.Warn("redis unreachable at startup", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		return p, nil
	case "ristretto":
		return ristretto.New(ristretto.Config{
			NumCounters: cfg.Memory.MaxCost * 10,
			MaxCost:     cfg.Memory.MaxCost,
			BufferItems: 64,
		})
	case "bigcache":
		return bigcache.New(bigcache.Config{
			LifeWindow:         cfg.Cache.TTL,
			HardMaxCacheSizeMB: cfg.Memory.MaxMB,
		})
	case "ttlcache":
		return ttlcache.New(ttlcache.Config{Capacity: cfg.Memory.Capacity}), nil
	case "none":
		return provider.Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Cache.Provider)
	}
}

func newLookup(ctx context.Context, cfg *config.Config, logger *zap.Logger) (asidecache.Lookup[region.Region], error) {
	p, err := newProvider(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return buildLookup(ctx, cfg, p, logger)
}

// buildLookup takes ownership of p and closes it when construction fails.
func buildLookup(ctx context.Context, cfg *config.Config, p provider.Provider, logger *zap.Logger) (asidecache.Lookup[region.Region], error) {
	cd, err := codec.ByName[[]region.Region](cfg.Cache.Codec)
	if err != nil {
		_ = p.Close(ctx)
		return nil, err
	}
	lk, err := asidecache.New[region.Region](asidecache.Options[region.Region]{
		Provider:  p,
		Codec:     cd,
		Namespace: cfg.Cache.Namespace,
		Logger:    zaplog.ZapLogger{L: logger.Named("asidecache")},
		TTL:       cfg.Cache.TTL,
		MaxDecode: cfg.Cache.MaxDecode,
		Disabled:  cfg.Cache.Provider == "none",
	})
	if err != nil {
		_ = p.Close(ctx)
		return nil, err
	}
	return lk, nil
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, region.ErrNotFound):
		return exitNotFound
	case errors.Is(err, asidecache.ErrSourceUnavailable):
		return exitUnavailable
	default:
		return 1
	}
}

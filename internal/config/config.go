package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/unkn0wn-root/asidecache"
)

// Config aggregates configuration for regionlookup.
type Config struct {
	Cache    CacheConfig    `mapstructure:"cache"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Memory   MemoryConfig   `mapstructure:"memory"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Log      LogConfig      `mapstructure:"log"`
}

type CacheConfig struct {
	Provider  string        `mapstructure:"provider"` // redis | ristretto | bigcache | ttlcache | none
	Codec     string        `mapstructure:"codec"`    // json | msgpack | cbor
	Namespace string        `mapstructure:"namespace"`
	TTL       time.Duration `mapstructure:"ttl"`
	MaxDecode int           `mapstructure:"max_decode"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// MemoryConfig sizes the in-process providers.
type MemoryConfig struct {
	MaxCost  int64  `mapstructure:"max_cost"` // ristretto
	Capacity uint64 `mapstructure:"capacity"` // ttlcache
	MaxMB    int    `mapstructure:"max_mb"`   // bigcache
}

type PostgresConfig struct {
	DSN    string `mapstructure:"dsn"`
	Schema string `mapstructure:"schema"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

var providers = map[string]bool{
	"redis": true, "ristretto": true, "bigcache": true, "ttlcache": true, "none": true,
}

func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Provider: "redis",
			Codec:    "json",
			TTL:      asidecache.DefaultTTL,
		},
		Redis: RedisConfig{
			Addr:    "localhost:6379",
			Timeout: 500 * time.Millisecond,
		},
		Memory: MemoryConfig{
			MaxCost:  1 << 20,
			Capacity: 10_000,
			MaxMB:    64,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads configuration from an optional file and environment variables.
// Environment variables use the prefix "REGIONLOOKUP" and the dot character
// in keys is replaced by an underscore. For example, "redis.addr" becomes
// "REGIONLOOKUP_REDIS_ADDR". An empty file means "regionlookup.yaml" in the
// working directory, if present.
func Load(v *viper.Viper, file string) (*Config, error) {
	cfg := DefaultConfig()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("regionlookup")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("REGIONLOOKUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if !providers[c.Cache.Provider] {
		return fmt.Errorf("config: unknown cache.provider %q", c.Cache.Provider)
	}
	switch c.Cache.Codec {
	case "", "json", "msgpack", "cbor":
	default:
		return fmt.Errorf("config: unknown cache.codec %q", c.Cache.Codec)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("config: negative cache.ttl %s", c.Cache.TTL)
	}
	if c.Cache.Provider == "redis" && c.Redis.Addr == "" {
		return errors.New("config: redis.addr is required for the redis provider")
	}
	return nil
}

// bindEnvs registers all keys within cfg so that viper will look up
// corresponding environment variables when unmarshalling.
func bindEnvs(v *viper.Viper, cfg any, parts ...string) {
	val := reflect.ValueOf(cfg)
	typ := reflect.TypeOf(cfg)
	if typ.Kind() == reflect.Ptr {
		val = val.Elem()
		typ = typ.Elem()
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" {
			tag = strings.ToLower(f.Name)
		}
		key := append(append([]string(nil), parts...), tag)
		if f.Type.Kind() == reflect.Struct {
			bindEnvs(v, val.Field(i).Interface(), key...)
			continue
		}
		_ = v.BindEnv(strings.Join(key, "."))
	}
}

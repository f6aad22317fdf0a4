package config

import (
	"net"
	"time"

	"github.com/spf13/viper"
)

type CacheConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	DefaultTTL    time.Duration
	GeocodeTTL    time.Duration
}

func newCacheConfig(v *viper.Viper) *CacheConfig {
	return &CacheConfig{
		RedisHost:     v.GetString("redis_host"),
		RedisPort:     v.GetString("redis_port"),
		RedisPassword: v.GetString("redis_password"),
		RedisDB:       v.GetInt("redis_db"),
		DefaultTTL:    v.GetDuration("cache_ttl"),
		GeocodeTTL:    v.GetDuration("geocode_cache_ttl"),
	}
}

// UseRedis reports whether a Redis host is configured; otherwise an in-process cache is used.
func (c *CacheConfig) UseRedis() bool {
	return c.RedisHost != ""
}

func (c *CacheConfig) RedisAddr() string {
	return net.JoinHostPort(c.RedisHost, c.RedisPort)
}

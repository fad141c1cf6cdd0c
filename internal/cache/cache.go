// Package cache keeps product snapshots close to the dashboard so repeated
// reports do not hit the catalog store for every line item.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jekabolt/retail-dashboard/internal/dependency"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"

	defaultTTL = 5 * time.Minute
)

type Config struct {
	// Backend is memory or redis.
	Backend       string        `mapstructure:"backend"`
	TTL           time.Duration `mapstructure:"ttl"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
}

// New returns the product cache selected by c.Backend and a func releasing it.
func New(ctx context.Context, c *Config) (dependency.ProductCache, func() error, error) {
	if c == nil {
		c = &Config{}
	}
	ttl := c.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	switch strings.ToLower(c.Backend) {
	case "", BackendMemory:
		return NewMemory(ttl), func() error { return nil }, nil
	case BackendRedis:
		rc, err := NewRedis(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB, ttl)
		if err != nil {
			return nil, nil, err
		}
		return rc, rc.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", c.Backend)
	}
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jekabolt/retail-dashboard/internal/entity"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "retail:product:"

// RedisCache stores product snapshots as JSON with a TTL so several service instances share them.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis addr is empty")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("can't ping redis: %w", err)
	}
	return &RedisCache{rdb: rdb, ttl: ttl}, nil
}

func redisKey(id int) string {
	return redisKeyPrefix + strconv.Itoa(id)
}

func (c *RedisCache) Get(ctx context.Context, id int) (*entity.Product, bool, error) {
	b, err := c.rdb.Get(ctx, redisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var prd entity.Product
	if err := json.Unmarshal(b, &prd); err != nil {
		return nil, false, fmt.Errorf("can't decode cached product %d: %w", id, err)
	}
	return &prd, true, nil
}

func (c *RedisCache) Set(ctx context.Context, prd entity.Product) error {
	b, err := json.Marshal(prd)
	if err != nil {
		return fmt.Errorf("can't encode product %d: %w", prd.Id, err)
	}
	if err := c.rdb.Set(ctx, redisKey(prd.Id), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, id int) error {
	if err := c.rdb.Del(ctx, redisKey(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Flush removes every cached product. Keys outside the prefix are kept.
func (c *RedisCache) Flush(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == 100 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) > 0 {
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

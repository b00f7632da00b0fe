package db

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client settings for the run-event publisher: one small pipeline per run.
const (
	redisClientName   = "data-cleaning"
	redisPoolSize     = 2
	redisDialTimeout  = 3 * time.Second
	redisReadTimeout  = 2 * time.Second
	redisWriteTimeout = 2 * time.Second
)

// NewRedisClient parses redisURL, applies the publisher defaults and
// verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}
	publisherOptions(opts)

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping to %s failed: %w", opts.Addr, err)
	}

	return rdb, nil
}

// publisherOptions fills the settings the URL left unset. Values given as
// URL query parameters (client_name, pool_size, dial_timeout, ...) win.
func publisherOptions(opts *redis.Options) {
	if opts.ClientName == "" {
		opts.ClientName = redisClientName
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = redisPoolSize
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = redisDialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = redisReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = redisWriteTimeout
	}
}

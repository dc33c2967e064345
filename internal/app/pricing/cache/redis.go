// Package cache layers a Redis read-through cache over price calculation.
// Entries are keyed by a version that every change event bumps, so one
// INCR invalidates everything cached before the change.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	versionKey  = "pricing:calc:version"
	keyPrefix   = "pricing:calc"
	pingTimeout = 5 * time.Second
)

// NewClient connects to the Redis server at url (redis://host:port/db).
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func currentVersion(ctx context.Context, client *redis.Client) (int64, error) {
	ver, err := client.Get(ctx, versionKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return ver, err
}

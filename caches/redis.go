package caches

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisDeleteChunkSize = 500

var redisGlobEscaper = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`?`, `\?`,
	`[`, `\[`,
	`]`, `\]`,
)

// Redis is a cache which can be shared by a set of processes. TTL is
// handled by Redis itself.
type Redis struct {
	client redis.UniversalClient
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, key).Bytes()

	switch {
	case errors.Is(err, redis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("cannot get a value: %w", err)
	}

	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}

	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cannot set a value: %w", err)
	}

	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) (bool, error) {
	removed, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("cannot delete a value: %w", err)
	}

	return removed > 0, nil
}

// DeleteByPrefix scans a keyspace with SCAN MATCH so it does not block
// Redis as KEYS would do.
func (r *Redis) DeleteByPrefix(ctx context.Context, prefix string) (bool, error) {
	iter := r.client.Scan(ctx, 0, redisGlobEscaper.Replace(prefix)+"*", redisDeleteChunkSize).Iterator()
	chunk := make([]string, 0, redisDeleteChunkSize)
	removed := int64(0)

	flush := func() error {
		if len(chunk) == 0 {
			return nil
		}

		count, err := r.client.Del(ctx, chunk...).Result()
		if err != nil {
			return fmt.Errorf("cannot delete values: %w", err)
		}

		removed += count
		chunk = chunk[:0]

		return nil
	}

	for iter.Next(ctx) {
		chunk = append(chunk, iter.Val())

		if len(chunk) == redisDeleteChunkSize {
			if err := flush(); err != nil {
				return removed > 0, err
			}
		}
	}

	if err := iter.Err(); err != nil {
		return removed > 0, fmt.Errorf("cannot scan keys: %w", err)
	}

	if err := flush(); err != nil {
		return removed > 0, err
	}

	return removed > 0, nil
}

// NewRedis wraps a Redis client. Client lifecycle is a responsibility
// of a caller.
func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

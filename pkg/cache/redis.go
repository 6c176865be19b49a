package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Redis stores cache entries in Redis under keyPrefix.
type Redis struct {
	client    goredis.UniversalClient
	keyPrefix string
}

func NewRedis(client goredis.UniversalClient, keyPrefix string) *Redis {
	return &Redis{client: client, keyPrefix: keyPrefix}
}

func (r *Redis) key(key string) string {
	return r.keyPrefix + key
}

func (r *Redis) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("cache: redis get %s: %w", key, err)
	}
	return json.Unmarshal(data, dest)
}

func (r *Redis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal %s: %w", key, err)
	}
	return r.client.Set(ctx, r.key(key), data, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = r.key(k)
	}
	return r.client.Del(ctx, prefixed...).Err()
}

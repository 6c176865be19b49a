package cache

import (
	"context"
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache: key not found")

// Cache is a TTL key/value store. Values are stored JSON encoded, so anything
// passed to Set must round-trip through encoding/json into the dest given to Get.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Noop never stores anything; every Get is a miss.
type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) error              { return ErrCacheMiss }
func (Noop) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error                      { return nil }

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process cache backed by patrickmn/go-cache.
type Memory struct {
	store *gocache.Cache
}

// NewMemory creates an in-memory cache; defaultTTL applies when Set is called with ttl <= 0.
func NewMemory(defaultTTL, cleanupInterval time.Duration) *Memory {
	return &Memory{store: gocache.New(defaultTTL, cleanupInterval)}
}

func (m *Memory) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := m.store.Get(key)
	if !ok {
		return ErrCacheMiss
	}
	data, ok := raw.([]byte)
	if !ok {
		return fmt.Errorf("cache: unexpected value type %T for key %s", raw, key)
	}
	return json.Unmarshal(data, dest)
}

func (m *Memory) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal %s: %w", key, err)
	}
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.store.Set(key, data, ttl)
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		m.store.Delete(key)
	}
	return nil
}

// ItemCount reports the number of entries, expired ones included until the janitor runs.
func (m *Memory) ItemCount() int {
	return m.store.ItemCount()
}

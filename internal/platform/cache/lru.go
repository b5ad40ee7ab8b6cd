package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

type lruEntry struct {
	value     []byte
	expiresAt time.Time
}

// LRU is an in-process cache bounded by entry count.
type LRU struct {
	cache *lru.Cache
	now   func() time.Time
}

func NewLRU(size int) (*LRU, error) {
	if size <= 0 {
		size = 512
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("init lru cache: %w", err)
	}
	return &LRU{cache: c, now: time.Now}, nil
}

func (c *LRU) Get(_ context.Context, key string) ([]byte, bool, error) {
	raw, ok := c.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	entry, ok := raw.(lruEntry)
	if !ok {
		c.cache.Remove(key)
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.cache.Remove(key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (c *LRU) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := lruEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}
	c.cache.Add(key, entry)
	return nil
}

func (c *LRU) DeletePrefix(_ context.Context, prefix string) error {
	for _, k := range c.cache.Keys() {
		if s, ok := k.(string); ok && strings.HasPrefix(s, prefix) {
			c.cache.Remove(k)
		}
	}
	return nil
}

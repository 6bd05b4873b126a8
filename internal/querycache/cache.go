// Package querycache keeps short-lived copies of backend reads so several
// consumers can share one fetch.
package querycache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry[T any] struct {
	value   T
	expires time.Time
}

// Cache is keyed by string. Concurrent misses for the same key share a
// single fetch. Failed fetches are not stored.
type Cache[T any] struct {
	ttl   time.Duration
	clock func() time.Time

	mu      sync.Mutex
	entries map[string]entry[T]
	group   singleflight.Group
}

func New[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		ttl:     ttl,
		clock:   time.Now,
		entries: make(map[string]entry[T]),
	}
}

// WithClock replaces the time source.
func (c *Cache[T]) WithClock(clock func() time.Time) *Cache[T] {
	c.clock = clock
	return c
}

func (c *Cache[T]) Get(ctx context.Context, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	if v, ok := c.lookup(key); ok {
		return v, nil
	}
	res, err, _ := c.group.Do(key, func() (any, error) {
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		v, err := fetch(ctx)
		if err != nil {
			return v, err
		}
		c.mu.Lock()
		c.entries[key] = entry[T]{value: v, expires: c.clock().Add(c.ttl)}
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

func (c *Cache[T]) lookup(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if !c.clock().Before(e.expires) {
		delete(c.entries, key)
		var zero T
		return zero, false
	}
	return e.value, true
}

func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	c.group.Forget(key)
}

func (c *Cache[T]) Purge() {
	c.mu.Lock()
	c.entries = make(map[string]entry[T])
	c.mu.Unlock()
}

func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

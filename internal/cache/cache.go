// Package cache provides the in-process TTL memoization used around the
// upstream sheet and gig-feed fetches. Concurrent callers asking for the
// same stale key share a single refresh via singleflight.
package cache

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type item[T any] struct {
	value     T
	fetchedAt time.Time
}

// TTL is a keyed value cache with a fixed time-to-live.
type TTL[T any] struct {
	ttl time.Duration
	now func() time.Time

	group singleflight.Group

	mu     sync.Mutex
	values map[string]item[T]
}

// New returns a TTL cache. A non-positive ttl disables caching entirely,
// which is what tests and one-shot CLI commands want.
func New[T any](ttl time.Duration) *TTL[T] {
	return &TTL[T]{
		ttl:    ttl,
		now:    time.Now,
		values: make(map[string]item[T]),
	}
}

// Get returns the cached value for key, calling fetch to (re)populate it
// when missing or expired. Fetch errors are not cached; the next caller
// retries.
func (c *TTL[T]) Get(key string, fetch func() (T, error)) (T, bool, error) {
	if c.ttl > 0 {
		c.mu.Lock()
		if it, ok := c.values[key]; ok && c.now().Sub(it.fetchedAt) < c.ttl {
			c.mu.Unlock()
			return it.value, true, nil
		}
		c.mu.Unlock()
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		value, err := fetch()
		if err != nil {
			var zero T
			return zero, err
		}
		if c.ttl > 0 {
			c.mu.Lock()
			c.values[key] = item[T]{value: value, fetchedAt: c.now()}
			c.mu.Unlock()
		}
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return v.(T), false, nil
}

// Flush drops every cached value, forcing the next Get to refetch.
func (c *TTL[T]) Flush() {
	c.mu.Lock()
	c.values = make(map[string]item[T])
	c.mu.Unlock()
}

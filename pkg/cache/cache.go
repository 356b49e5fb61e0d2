package cache

import (
	"sync"
	"time"
)

// Cache stores values of a single type with a per entry TTL
type Cache[V any] interface {
	// Get returns the value and true when the key is present and not expired
	Get(key string) (V, bool)

	// Set stores a value for ttl. A non positive ttl stores nothing.
	Set(key string, value V, ttl time.Duration)

	Delete(key string)

	// Size includes expired entries that the janitor has not removed yet
	Size() int

	Stop()
}

type entry[V any] struct {
	value      V
	expiration time.Time
}

func (e *entry[V]) expired(now time.Time) bool {
	return now.After(e.expiration)
}

// InMemoryCache is a thread-safe Cache with a background janitor
type InMemoryCache[V any] struct {
	items           map[string]*entry[V]
	mu              sync.RWMutex
	cleanupInterval time.Duration
	stop            chan struct{}
	stopOnce        sync.Once
	now             func() time.Time
}

// NewInMemoryCache creates a cache whose expired entries are swept every
// cleanupInterval
func NewInMemoryCache[V any](cleanupInterval time.Duration) *InMemoryCache[V] {
	c := &InMemoryCache[V]{
		items:           make(map[string]*entry[V]),
		cleanupInterval: cleanupInterval,
		stop:            make(chan struct{}),
		now:             time.Now,
	}

	go c.janitor()

	return c
}

func (c *InMemoryCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero V
	item, found := c.items[key]
	if !found || item.expired(c.now()) {
		return zero, false
	}
	return item.value, true
}

func (c *InMemoryCache[V]) Set(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &entry[V]{value: value, expiration: c.now().Add(ttl)}
}

func (c *InMemoryCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

func (c *InMemoryCache[V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Stop ends the janitor goroutine. It is safe to call more than once.
func (c *InMemoryCache[V]) Stop() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
}

func (c *InMemoryCache[V]) janitor() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

func (c *InMemoryCache[V]) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, item := range c.items {
		if item.expired(now) {
			delete(c.items, key)
		}
	}
}

// Package cache holds an advisory response cache keyed by request path.
// Populated by public read handlers, cleared entirely on any mutating
// request. Its absence changes only latency, never observable behavior.
package cache

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

type Cache struct {
	mu      sync.RWMutex
	entries map[uint64]string
}

func New() *Cache {
	return &Cache{entries: map[uint64]string{}}
}

// keyFor generates an xxHash key for the given request path
func keyFor(path string) uint64 {
	return xxhash.Sum64String(path)
}

func (c *Cache) Get(path string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	body, ok := c.entries[keyFor(path)]
	return body, ok
}

func (c *Cache) Put(path, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[keyFor(path)] = body
}

// InvalidateAll drops every cached response.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[uint64]string{}
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

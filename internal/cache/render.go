// Package cache keeps rendered read responses keyed by resource path so that
// writes can drop every cached variant of a path in one call.
package cache

import (
	"sync"
	"time"
)

// RenderCache stores rendered bodies per path and variant key with a TTL.
type RenderCache struct {
	mu      sync.RWMutex
	entries map[string]map[string]*cacheEntry
	// gens counts invalidations per path. A render started under an older
	// generation is never stored.
	gens map[string]uint64
	ttl  time.Duration
	now  func() time.Time
}

type cacheEntry struct {
	body      []byte
	expiresAt time.Time
}

// New creates an empty cache. ttl is how long a render is served before
// being recomputed.
func New(ttl time.Duration) *RenderCache {
	return &RenderCache{
		entries: make(map[string]map[string]*cacheEntry),
		gens:    make(map[string]uint64),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached body for path/key if present and fresh.
func (c *RenderCache) Get(path, key string) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.entries[path][key]
	c.mu.RUnlock()

	if !ok || !c.now().Before(entry.expiresAt) {
		return nil, false
	}
	return entry.body, true
}

// Set stores body for path/key.
func (c *RenderCache) Set(path, key string, body []byte) {
	c.mu.Lock()
	c.store(path, key, body)
	c.mu.Unlock()
}

func (c *RenderCache) store(path, key string, body []byte) {
	variants, ok := c.entries[path]
	if !ok {
		variants = make(map[string]*cacheEntry)
		c.entries[path] = variants
	}
	variants[key] = &cacheEntry{body: body, expiresAt: c.now().Add(c.ttl)}
}

func (c *RenderCache) generation(path string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gens[path]
}

// Fetch returns the cached render for path/key, calling render on a miss.
// Failed renders are not cached, and neither are renders that overlapped
// an invalidation of path.
func (c *RenderCache) Fetch(path, key string, render func() ([]byte, error)) ([]byte, error) {
	if body, ok := c.Get(path, key); ok {
		return body, nil
	}

	gen := c.generation(path)
	body, err := render()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.gens[path] == gen {
		c.store(path, key, body)
	}
	c.mu.Unlock()
	return body, nil
}

// Invalidate drops every cached variant of path.
func (c *RenderCache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.gens[path]++
	c.mu.Unlock()
}

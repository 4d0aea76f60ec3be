// Package cache provides the per-run response cache injected into the
// vendor enrichment clients.
package cache

import (
	"strings"
	"sync"
)

// Cache stores successful vendor responses for the lifetime of a single
// pipeline run, keyed by normalized search term. Only successes are stored;
// failed lookups are re-attempted if the same key recurs within the run.
type Cache interface {
	Get(key string) (any, bool)
	Put(key string, value any)
	Len() int
}

// Key normalizes a search term into a cache key (case-folded, trimmed).
func Key(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Memory is an in-process Cache safe for concurrent use within a batch.
// It is append-mostly with no eviction: a run is short-lived, so the map
// dies with it. On the rare race of two identical keys in one batch the
// last writer wins, which is benign since both computed the same value.
type Memory struct {
	mu sync.RWMutex
	m  map[string]any
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{m: make(map[string]any)}
}

// Get returns the cached value for key, if present.
func (c *Memory) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[key]
	return v, ok
}

// Put stores value under key.
func (c *Memory) Put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = value
}

// Len returns the number of cached entries.
func (c *Memory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

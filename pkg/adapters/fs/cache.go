package fs

import (
	"sync"
	"time"
)

// cacheEntry is a parsed record together with the file facts it was parsed from.
type cacheEntry[T any] struct {
	value T
	mtime time.Time
	size  int64
}

// cache memoizes parsed records by relative path. An entry is only served
// while the file's mtime and size are unchanged.
type cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry[T]
}

func newCache[T any]() *cache[T] {
	return &cache[T]{entries: make(map[string]cacheEntry[T])}
}

// Get returns the cached value for relPath if it is still fresh.
func (c *cache[T]) Get(relPath string, mtime time.Time, size int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[relPath]
	if !ok || !entry.mtime.Equal(mtime) || entry.size != size {
		var zero T
		return zero, false
	}
	return entry.value, true
}

// Set stores value for relPath.
func (c *cache[T]) Set(relPath string, value T, mtime time.Time, size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[relPath] = cacheEntry[T]{value: value, mtime: mtime, size: size}
}

// Delete drops a single entry.
func (c *cache[T]) Delete(relPath string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, relPath)
}

// Prune removes entries that are not in keep.
func (c *cache[T]) Prune(keep map[string]bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for path := range c.entries {
		if !keep[path] {
			delete(c.entries, path)
		}
	}
}

// Len returns the number of entries.
func (c *cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

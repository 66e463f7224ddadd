package layout

import (
	"sync"

	"outpad/internal/engine/buffer"
)

// Cache memoizes computed line layouts keyed by line number and buffer
// revision. Any mutation bumps the revision, so stale layouts fall out
// naturally on the next lookup.
type Cache struct {
	mu       sync.Mutex
	opts     Options
	capacity int
	entries  map[uint32]cacheEntry
}

type cacheEntry struct {
	revision buffer.Revision
	line     *Line
}

// NewCache creates a cache holding at most capacity layouts.
func NewCache(opts Options, capacity int) *Cache {
	if capacity <= 0 {
		capacity = 500
	}
	return &Cache{
		opts:     opts,
		capacity: capacity,
		entries:  make(map[uint32]cacheEntry),
	}
}

// Options returns the layout options the cache computes with.
func (c *Cache) Options() Options {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opts
}

// SetOptions replaces the layout options and invalidates everything.
func (c *Cache) SetOptions(opts Options) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opts = opts
	c.entries = make(map[uint32]cacheEntry)
}

// Get returns the layout for the given line, computing it if the cached
// entry is missing or from an older revision.
func (c *Cache) Get(lineNum uint32, text string, rev buffer.Revision) *Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[lineNum]; ok && e.revision == rev {
		return e.line
	}

	line := Compute(text, c.opts)

	if len(c.entries) >= c.capacity {
		// Cheap eviction: drop an arbitrary entry per overflow.
		for k := range c.entries {
			delete(c.entries, k)
			break
		}
	}
	c.entries[lineNum] = cacheEntry{revision: rev, line: line}

	return line
}

// InvalidateAll clears the cache.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint32]cacheEntry)
}

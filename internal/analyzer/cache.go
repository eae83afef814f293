package analyzer

import (
	"crypto/sha256"
	"sync"
	"sync/atomic"

	"github.com/ericfisherdev/rslines/internal/classify"
)

// ParseCache memoizes classify.ParseRust by content hash so repeated
// runs over an unchanged tree (or files that are byte-identical, a
// common case for generated or vendored Rust) skip re-parsing. Adapted
// from the teacher's RustPerformanceOptimizer, now actually sitting in
// front of a real parse instead of a parser that was never reachable
// from the scan path.
type ParseCache struct {
	mu      sync.RWMutex
	entries map[[32]byte]cacheEntry

	hits   atomic.Int64
	misses atomic.Int64
}

type cacheEntry struct {
	tree     classify.Tree
	degraded bool
}

func NewParseCache() *ParseCache {
	return &ParseCache{entries: make(map[[32]byte]cacheEntry)}
}

// Parse returns a cached tree for this exact content if present,
// otherwise parses, stores, and returns the new result.
func (c *ParseCache) Parse(src []byte) (classify.Tree, bool, error) {
	key := sha256.Sum256(src)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return entry.tree, entry.degraded, nil
	}
	c.misses.Add(1)

	tree, degraded, err := classify.ParseRust(src)
	if err != nil {
		return nil, degraded, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{tree: tree, degraded: degraded}
	c.mu.Unlock()
	return tree, degraded, nil
}

// Stats reports cumulative cache hits and misses. Nothing in the CLI
// logs these counters.
func (c *ParseCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

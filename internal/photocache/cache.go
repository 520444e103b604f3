package photocache

import (
	"sort"
	"sync"
)

// Entry is one cached photo.
type Entry struct {
	Key   string `json:"key"`
	Image string `json:"image"` // serialized photo, typically a data URL
}

// Cache stores serialized photos by key.
type Cache interface {
	// Get returns the stored image for key and whether it was present.
	Get(key string) (string, bool, error)

	// Entries returns every entry sorted by key.
	Entries() ([]Entry, error)

	// ClearAndRepopulate replaces the whole cache with entries. Either all of
	// entries become visible or the old contents remain.
	ClearAndRepopulate(entries []Entry) error
}

// MemoryCache is an in-process Cache.
//
// MemoryCache is safe for concurrent use by multiple goroutines.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]string)}
}

// Get implements Cache.
func (c *MemoryCache) Get(key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.entries[key]
	return img, ok, nil
}

// Entries implements Cache.
func (c *MemoryCache) Entries() ([]Entry, error) {
	c.mu.RLock()
	out := make([]Entry, 0, len(c.entries))
	for k, v := range c.entries {
		out = append(out, Entry{Key: k, Image: v})
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// ClearAndRepopulate implements Cache.
func (c *MemoryCache) ClearAndRepopulate(entries []Entry) error {
	next := make(map[string]string, len(entries))
	for _, e := range entries {
		next[e.Key] = e.Image
	}

	c.mu.Lock()
	c.entries = next
	c.mu.Unlock()
	return nil
}

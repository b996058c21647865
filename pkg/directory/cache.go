package directory

import (
	"sync"

	"github.com/carverauto/quantumdir/pkg/models"
)

// StaticInfoCache is a process-wide store of the static (non-status)
// fields of every device resolved so far. Entries are written at most
// once per device and never evicted; memory grows with the number of
// distinct devices resolved during the process lifetime.
type StaticInfoCache struct {
	mu      sync.RWMutex
	entries map[string]*models.CacheEntry
}

// NewStaticInfoCache creates an empty cache.
func NewStaticInfoCache() *StaticInfoCache {
	return &StaticInfoCache{
		entries: make(map[string]*models.CacheEntry),
	}
}

// Get retrieves the static entry for a device ARN. The returned entry
// is a defensive copy.
func (c *StaticInfoCache) Get(arn string) (*models.CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[arn]
	if !ok {
		return nil, false
	}

	return entry.Clone(), true
}

// PutIfAbsent stores the entry unless one already exists for the ARN.
// When two callers race, exactly one write wins and the loser's entry
// is discarded whole. The winning entry is returned either way, so
// callers always observe one consistent static projection.
func (c *StaticInfoCache) PutIfAbsent(arn string, entry *models.CacheEntry) (*models.CacheEntry, bool) {
	if entry == nil {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[arn]; ok {
		return existing.Clone(), false
	}

	stored := entry.Clone()
	c.entries[arn] = stored

	return stored.Clone(), true
}

// Len returns the number of cached devices.
func (c *StaticInfoCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

package mensa

import (
	"sync"
	"time"
)

// Cache is the single shared holder of the latest Snapshot. One writer
// (the refresh daemon) replaces the whole snapshot and the timestamp
// together under the lock; any number of readers take a consistent
// view. Published snapshots are never mutated, so handing the pointer
// out without copying is safe.
type Cache struct {
	mu         sync.RWMutex
	snapshot   Snapshot
	lastUpdate time.Time
}

func NewCache() *Cache {
	return &Cache{}
}

// Read returns the current snapshot, nil before the first successful
// refresh. Callers must treat it as read-only.
func (c *Cache) Read() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// Replace swaps in a new snapshot and advances the timestamp as one
// atomic transition; a concurrent Read observes either the old or the
// new state in full.
func (c *Cache) Replace(snapshot Snapshot, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = snapshot
	c.lastUpdate = now
}

func (c *Cache) Meta() Meta {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.lastUpdate.IsZero() {
		return Meta{}
	}
	return Meta{LastUpdate: c.lastUpdate.Format(time.RFC3339)}
}

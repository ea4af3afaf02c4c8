package usecase

import (
	"sync"
	"time"

	"tripwatch-service/internal/domain/entity"
)

type cacheEntry struct {
	snapshot   *entity.FlightStatusSnapshot
	insertedAt time.Time
}

// StatusCache is a short-lived in-process cache of flight status snapshots,
// keyed by flight number + date. It is owned by the composition root and
// shared by reference; concurrent refreshes of the same key are last-write-
// wins, which is safe because both writers hold equivalent fresh data.
type StatusCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewStatusCache creates a cache with the given freshness window.
func NewStatusCache(ttl time.Duration) *StatusCache {
	return &StatusCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func cacheKey(flightNumber, date string) string {
	return flightNumber + "|" + date
}

// Get returns the cached snapshot if it is still fresh. A stale entry is
// reported as a miss but left in place; Sweep owns removal.
func (c *StatusCache) Get(flightNumber, date string) (*entity.FlightStatusSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[cacheKey(flightNumber, date)]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.insertedAt) > c.ttl {
		return nil, false
	}
	return entry.snapshot, true
}

// Put stores a snapshot, overwriting any previous entry for the key.
func (c *StatusCache) Put(snapshot *entity.FlightStatusSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey(snapshot.FlightNumber, snapshot.FlightDate)] = cacheEntry{
		snapshot:   snapshot,
		insertedAt: c.now(),
	}
}

// Sweep removes every entry older than the freshness window and returns the
// number removed. Invoked on its own schedule, independent of reads.
func (c *StatusCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	cutoff := c.now().Add(-c.ttl)
	for key, entry := range c.entries {
		if entry.insertedAt.Before(cutoff) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries currently held, fresh or stale.
func (c *StatusCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

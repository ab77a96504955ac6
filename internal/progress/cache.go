package progress

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/moniyo/financequest/internal/domain"
)

// snapshot is the language independent state a progress view is built from
type snapshot struct {
	Version  string
	Progress *domain.UserProgress
	Events   []domain.SavingsEvent
	CachedAt time.Time
}

// snapshotCache is an expiring LRU of per-user snapshots. Entries are
// invalidated on every write for the user. Each invalidation bumps the user's
// generation so a read that started before the write cannot cache what it saw.
type snapshotCache struct {
	lru *expirable.LRU[string, *snapshot]

	mu          sync.Mutex
	generations map[string]uint64
}

func newSnapshotCache(size int, ttl time.Duration) *snapshotCache {
	return &snapshotCache{
		lru:         expirable.NewLRU[string, *snapshot](size, nil, ttl),
		generations: make(map[string]uint64),
	}
}

func (c *snapshotCache) Get(userID string) (*snapshot, bool) {
	entry, found := c.lru.Get(userID)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(userID)
		return nil, false
	}
	return entry, true
}

// Generation is read before loading a snapshot from the store
func (c *snapshotCache) Generation(userID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[userID]
}

// Set stores the snapshot unless the user was invalidated after gen was read
func (c *snapshotCache) Set(userID string, gen uint64, p *domain.UserProgress, events []domain.SavingsEvent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generations[userID] != gen {
		return false
	}
	c.lru.Add(userID, &snapshot{
		Version:  CacheSchemaVersion,
		Progress: p.Clone(),
		Events:   append([]domain.SavingsEvent(nil), events...),
		CachedAt: time.Now(),
	})
	return true
}

func (c *snapshotCache) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generations[userID]++
	c.lru.Remove(userID)
}

func (c *snapshotCache) Len() int {
	return c.lru.Len()
}

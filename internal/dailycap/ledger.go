package dailycap

import (
	"context"
	"fmt"
	"sync"
)

// Bucket identifies one counter for one user on one day
type Bucket struct {
	Kind   string
	UserID string
	Day    string // 2006-01-02 in the limiter's time zone
}

func (b Bucket) String() string {
	return fmt.Sprintf("%s:%s:%s", b.Kind, b.UserID, b.Day)
}

// Ledger persists per-day counters.
// Reserve atomically grants up to amount without letting the counter exceed
// limit and returns the granted portion. Release hands back a previously
// granted amount; the counter never drops below zero.
type Ledger interface {
	Reserve(ctx context.Context, b Bucket, amount, limit int) (int, error)
	Release(ctx context.Context, b Bucket, amount int) error
	Used(ctx context.Context, b Bucket) (int, error)
}

// MemoryLedger is an in-process Ledger
type MemoryLedger struct {
	mu     sync.Mutex
	counts map[Bucket]int
}

// NewMemoryLedger creates an empty in-process ledger
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{counts: make(map[Bucket]int)}
}

// Reserve implements Ledger
func (l *MemoryLedger) Reserve(_ context.Context, b Bucket, amount, limit int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	granted := grant(l.counts[b], amount, limit)
	if granted > 0 {
		l.counts[b] += granted
	}
	return granted, nil
}

// Release implements Ledger
func (l *MemoryLedger) Release(_ context.Context, b Bucket, amount int) error {
	if amount <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if left := l.counts[b] - amount; left > 0 {
		l.counts[b] = left
	} else {
		delete(l.counts, b)
	}
	return nil
}

// Used implements Ledger
func (l *MemoryLedger) Used(_ context.Context, b Bucket) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[b], nil
}

// Prune drops every bucket older than beforeDay and returns how many were removed
func (l *MemoryLedger) Prune(beforeDay string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for b := range l.counts {
		if b.Day < beforeDay {
			delete(l.counts, b)
			removed++
		}
	}
	return removed
}

func grant(used, amount, limit int) int {
	remaining := limit - used
	if remaining <= 0 || amount <= 0 {
		return 0
	}
	if amount > remaining {
		return remaining
	}
	return amount
}

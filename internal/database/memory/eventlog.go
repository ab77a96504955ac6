package memory

import (
	"context"
	"maps"
	"sort"
	"time"

	"github.com/moniyo/financequest/internal/repository"
)

// AppendActivity implements repository.EventLog
func (s *Store) AppendActivity(_ context.Context, a repository.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.Payload = maps.Clone(a.Payload)
	s.activity[a.UserID] = append(s.activity[a.UserID], a)
	return nil
}

// ListActivity implements repository.EventLog
func (s *Store) ListActivity(_ context.Context, userID string, limit int) ([]repository.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.activity[userID]
	out := make([]repository.Activity, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		a := entries[i]
		a.Payload = maps.Clone(a.Payload)
		out = append(out, a)
	}
	// Newest first, later appends first on equal timestamps
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// PruneActivity implements repository.EventLog
func (s *Store) PruneActivity(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for userID, entries := range s.activity {
		kept := entries[:0]
		for _, a := range entries {
			if a.OccurredAt.Before(before) {
				removed++
				continue
			}
			kept = append(kept, a)
		}
		if len(kept) == 0 {
			delete(s.activity, userID)
			continue
		}
		s.activity[userID] = kept
	}
	return removed, nil
}

// Package memory is an in-process storage backend for local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/moniyo/financequest/internal/domain"
	"github.com/moniyo/financequest/internal/repository"
)

// Store keeps every document in mutex-guarded maps and hands out deep copies
type Store struct {
	mu       sync.Mutex
	progress map[string]*domain.UserProgress
	savings  map[string]map[string]domain.SavingsEvent
	activity map[string][]repository.Activity
}

var _ repository.Store = (*Store)(nil)

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		progress: make(map[string]*domain.UserProgress),
		savings:  make(map[string]map[string]domain.SavingsEvent),
		activity: make(map[string][]repository.Activity),
	}
}

// CreateProgress implements repository.Progress
func (s *Store) CreateProgress(_ context.Context, p *domain.UserProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.progress[p.UserID]; ok {
		return domain.ErrProgressExists
	}
	s.progress[p.UserID] = p.Clone()
	return nil
}

// GetProgress implements repository.Progress
func (s *Store) GetProgress(_ context.Context, userID string) (*domain.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.progress[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return p.Clone(), nil
}

// UpdateProgress implements repository.Progress. fn runs on a copy while the
// store lock is held; the copy replaces the stored document only on success.
func (s *Store) UpdateProgress(_ context.Context, userID string, fn repository.UpdateFunc) (*domain.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.progress[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	working := current.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	working.UserID = userID
	s.progress[userID] = working
	return working.Clone(), nil
}

// AddSavingsEvent implements repository.Savings
func (s *Store) AddSavingsEvent(_ context.Context, ev *domain.SavingsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.progress[ev.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	byID, ok := s.savings[ev.UserID]
	if !ok {
		byID = make(map[string]domain.SavingsEvent)
		s.savings[ev.UserID] = byID
	}
	byID[ev.ID] = *ev
	return nil
}

// UpdateSavingsEvent implements repository.Savings
func (s *Store) UpdateSavingsEvent(_ context.Context, ev *domain.SavingsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.savings[ev.UserID][ev.ID]
	if !ok {
		return domain.ErrSavingsEventNotFound
	}
	updated := *ev
	updated.CreatedAt = existing.CreatedAt
	updated.XPAwarded = existing.XPAwarded
	s.savings[ev.UserID][ev.ID] = updated
	return nil
}

// DeleteSavingsEvent implements repository.Savings
func (s *Store) DeleteSavingsEvent(_ context.Context, userID, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.savings[userID][eventID]; !ok {
		return domain.ErrSavingsEventNotFound
	}
	delete(s.savings[userID], eventID)
	return nil
}

// GetSavingsEvent implements repository.Savings
func (s *Store) GetSavingsEvent(_ context.Context, userID, eventID string) (*domain.SavingsEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.savings[userID][eventID]
	if !ok {
		return nil, domain.ErrSavingsEventNotFound
	}
	return &ev, nil
}

// ListSavingsEvents implements repository.Savings, oldest first
func (s *Store) ListSavingsEvents(_ context.Context, userID string) ([]domain.SavingsEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make([]domain.SavingsEvent, 0, len(s.savings[userID]))
	for _, ev := range s.savings[userID] {
		events = append(events, ev)
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[i].ID < events[j].ID
		}
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	return events, nil
}

// Ping implements repository.Store
func (s *Store) Ping(context.Context) error { return nil }

// Close implements repository.Store
func (s *Store) Close() error { return nil }

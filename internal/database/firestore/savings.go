package firestore

import (
	"context"
	"fmt"

	gcfirestore "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/moniyo/financequest/internal/domain"
)

// AddSavingsEvent implements repository.Savings
func (s *Store) AddSavingsEvent(ctx context.Context, ev *domain.SavingsEvent) error {
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *gcfirestore.Transaction) error {
		if _, err := tx.Get(s.userRef(ev.UserID)); err != nil {
			if isNotFound(err) {
				return domain.ErrUserNotFound
			}
			return fmt.Errorf("failed to read user: %w", err)
		}
		if err := tx.Create(s.savingsRef(ev.UserID, ev.ID), newSavingsDoc(ev)); err != nil {
			return fmt.Errorf("failed to add savings event: %w", err)
		}
		return nil
	})
}

// UpdateSavingsEvent implements repository.Savings. Creation time and awarded
// XP are kept from the stored event.
func (s *Store) UpdateSavingsEvent(ctx context.Context, ev *domain.SavingsEvent) error {
	ref := s.savingsRef(ev.UserID, ev.ID)
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *gcfirestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			if isNotFound(err) {
				return domain.ErrSavingsEventNotFound
			}
			return fmt.Errorf("failed to read savings event: %w", err)
		}
		fields := map[string]interface{}{
			"amount":       ev.Amount,
			"period":       ev.Period,
			"source":       ev.Source,
			"verified":     ev.Verified,
			"questId":      ev.QuestID,
			"category":     ev.Category,
			"title":        ev.Title,
			FieldUpdatedAt: ev.UpdatedAt.UTC(),
		}
		if err := tx.Set(ref, fields, gcfirestore.MergeAll); err != nil {
			return fmt.Errorf("failed to update savings event: %w", err)
		}
		return nil
	})
}

// DeleteSavingsEvent implements repository.Savings
func (s *Store) DeleteSavingsEvent(ctx context.Context, userID, eventID string) error {
	ref := s.savingsRef(userID, eventID)
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *gcfirestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			if isNotFound(err) {
				return domain.ErrSavingsEventNotFound
			}
			return fmt.Errorf("failed to read savings event: %w", err)
		}
		return tx.Delete(ref)
	})
}

// GetSavingsEvent implements repository.Savings
func (s *Store) GetSavingsEvent(ctx context.Context, userID, eventID string) (*domain.SavingsEvent, error) {
	snap, err := s.savingsRef(userID, eventID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrSavingsEventNotFound
		}
		return nil, fmt.Errorf("failed to get savings event: %w", err)
	}
	var doc savingsDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode savings event: %w", err)
	}
	ev := doc.toDomain(userID, snap.Ref.ID)
	return &ev, nil
}

// ListSavingsEvents implements repository.Savings, oldest first
func (s *Store) ListSavingsEvents(ctx context.Context, userID string) ([]domain.SavingsEvent, error) {
	iter := s.userRef(userID).Collection(CollectionSavingsEvent).
		OrderBy(FieldCreatedAt, gcfirestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	events := []domain.SavingsEvent{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list savings events: %w", err)
		}
		var doc savingsDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode savings event %s: %w", snap.Ref.ID, err)
		}
		events = append(events, doc.toDomain(userID, snap.Ref.ID))
	}
	return events, nil
}

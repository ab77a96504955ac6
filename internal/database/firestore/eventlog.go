package firestore

import (
	"context"
	"fmt"
	"time"

	gcfirestore "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/moniyo/financequest/internal/repository"
)

func (s *Store) activityRef(userID, id string) *gcfirestore.DocumentRef {
	return s.userRef(userID).Collection(CollectionActivity).Doc(id)
}

// AppendActivity implements repository.EventLog
func (s *Store) AppendActivity(ctx context.Context, a repository.Activity) error {
	doc := activityDoc{
		Type:       a.Type,
		Source:     a.Source,
		Payload:    a.Payload,
		OccurredAt: a.OccurredAt.UTC(),
	}
	if _, err := s.activityRef(a.UserID, a.ID).Set(ctx, doc); err != nil {
		return fmt.Errorf("failed to save activity %s: %w", a.ID, err)
	}
	return nil
}

// ListActivity implements repository.EventLog
func (s *Store) ListActivity(ctx context.Context, userID string, limit int) ([]repository.Activity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	iter := s.userRef(userID).Collection(CollectionActivity).
		OrderBy(FieldOccurredAt, gcfirestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var out []repository.Activity
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list activity: %w", err)
		}
		var doc activityDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode activity %s: %w", snap.Ref.ID, err)
		}
		out = append(out, repository.Activity{
			ID:         snap.Ref.ID,
			UserID:     userID,
			Type:       doc.Type,
			Source:     doc.Source,
			Payload:    doc.Payload,
			OccurredAt: doc.OccurredAt,
		})
	}
	return out, nil
}

// PruneActivity implements repository.EventLog. It scans every user's
// activity subcollection, which needs a single-field collection group index
// on occurredAt.
func (s *Store) PruneActivity(ctx context.Context, before time.Time) (int64, error) {
	iter := s.client.CollectionGroup(CollectionActivity).
		Where(FieldOccurredAt, "<", before.UTC()).
		Documents(ctx)
	defer iter.Stop()

	bw := s.client.BulkWriter(ctx)
	defer bw.End()

	var removed int64
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return removed, fmt.Errorf("failed to scan old activity: %w", err)
		}
		if _, err := bw.Delete(snap.Ref); err != nil {
			return removed, fmt.Errorf("failed to delete activity %s: %w", snap.Ref.ID, err)
		}
		removed++
	}
	return removed, nil
}

// Package firestore stores progress documents in Cloud Firestore: one
// users/{uid} document per user with savings events in a subcollection.
package firestore

import (
	"context"
	"fmt"

	gcfirestore "cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/moniyo/financequest/internal/domain"
	"github.com/moniyo/financequest/internal/repository"
)

// Store implements repository.Store over a Firestore client
type Store struct {
	client *gcfirestore.Client
}

var _ repository.Store = (*Store)(nil)

// NewStore wraps client. The client is owned by the Store.
func NewStore(client *gcfirestore.Client) *Store {
	return &Store{client: client}
}

// Open connects to the named database of a project. An empty database
// selects the default one.
func Open(ctx context.Context, projectID, database string) (*Store, error) {
	if database == "" {
		database = gcfirestore.DefaultDatabaseID
	}
	client, err := gcfirestore.NewClientWithDatabase(ctx, projectID, database)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return NewStore(client), nil
}

func (s *Store) userRef(userID string) *gcfirestore.DocumentRef {
	return s.client.Collection(CollectionUsers).Doc(userID)
}

func (s *Store) savingsRef(userID, eventID string) *gcfirestore.DocumentRef {
	return s.userRef(userID).Collection(CollectionSavingsEvent).Doc(eventID)
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

// CreateProgress implements repository.Progress
func (s *Store) CreateProgress(ctx context.Context, p *domain.UserProgress) error {
	if _, err := s.userRef(p.UserID).Create(ctx, progressFields(p)); err != nil {
		if isAlreadyExists(err) {
			return domain.ErrProgressExists
		}
		return fmt.Errorf("failed to create progress: %w", err)
	}
	return nil
}

// GetProgress implements repository.Progress
func (s *Store) GetProgress(ctx context.Context, userID string) (*domain.UserProgress, error) {
	snap, err := s.userRef(userID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return decodeSnapshot(snap)
}

func decodeSnapshot(snap *gcfirestore.DocumentSnapshot) (*domain.UserProgress, error) {
	var doc progressDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode progress: %w", err)
	}
	return doc.toDomain(snap.Ref.ID)
}

// UpdateProgress implements repository.Progress. Firestore may retry the
// transaction on contention, so fn can run more than once; only the last
// successful run is written.
func (s *Store) UpdateProgress(ctx context.Context, userID string, fn repository.UpdateFunc) (*domain.UserProgress, error) {
	ref := s.userRef(userID)
	var result *domain.UserProgress

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *gcfirestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return domain.ErrUserNotFound
			}
			return fmt.Errorf("failed to read progress: %w", err)
		}

		p, err := decodeSnapshot(snap)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
		p.UserID = userID

		if err := tx.Set(ref, progressFields(p), gcfirestore.MergeAll); err != nil {
			return fmt.Errorf("failed to write progress: %w", err)
		}
		result = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Ping issues a cheap read to confirm the backend is reachable
func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.client.Collection(CollectionUsers).Limit(1).Documents(ctx).GetAll(); err != nil {
		return fmt.Errorf("firestore ping: %w", err)
	}
	return nil
}

// Close releases the client
func (s *Store) Close() error {
	return s.client.Close()
}

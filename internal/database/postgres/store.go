package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moniyo/financequest/internal/repository"
)

// Store bundles the PostgreSQL repositories over one pool
type Store struct {
	*ProgressRepository
	*SavingsRepository
	repository.EventLog
	pool *pgxpool.Pool
}

var _ repository.Store = (*Store)(nil)

// NewStore creates a Store over pool. The pool is owned by the Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		ProgressRepository: NewProgressRepository(pool),
		SavingsRepository:  NewSavingsRepository(pool),
		EventLog:           NewActivityRepository(pool),
		pool:               pool,
	}
}

// Ping checks database connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the pool
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

package repository

import (
	"context"

	"github.com/moniyo/financequest/internal/domain"
)

// UpdateFunc mutates a progress document in place. Returning an error aborts
// the update and nothing is written.
type UpdateFunc func(p *domain.UserProgress) error

// Progress defines the interface for the per-user progress document store
type Progress interface {
	// CreateProgress stores a new document; domain.ErrProgressExists if one exists
	CreateProgress(ctx context.Context, p *domain.UserProgress) error

	// GetProgress returns the document; domain.ErrUserNotFound if missing
	GetProgress(ctx context.Context, userID string) (*domain.UserProgress, error)

	// UpdateProgress runs fn against the current document inside a transaction
	// and persists the result atomically. A missing document yields
	// domain.ErrUserNotFound without calling fn.
	UpdateProgress(ctx context.Context, userID string, fn UpdateFunc) (*domain.UserProgress, error)
}

// Savings defines the interface for savings event storage
type Savings interface {
	AddSavingsEvent(ctx context.Context, ev *domain.SavingsEvent) error
	UpdateSavingsEvent(ctx context.Context, ev *domain.SavingsEvent) error
	DeleteSavingsEvent(ctx context.Context, userID, eventID string) error
	GetSavingsEvent(ctx context.Context, userID, eventID string) (*domain.SavingsEvent, error)
	ListSavingsEvents(ctx context.Context, userID string) ([]domain.SavingsEvent, error)
}

// Store is a complete storage backend
type Store interface {
	Progress
	Savings
	EventLog
	Ping(ctx context.Context) error
	Close() error
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moniyo/financequest/internal/domain"
)

// SavingsRepository stores savings events in the savings_events table
type SavingsRepository struct {
	db *pgxpool.Pool
}

// NewSavingsRepository creates a new SavingsRepository
func NewSavingsRepository(db *pgxpool.Pool) *SavingsRepository {
	return &SavingsRepository{db: db}
}

// AddSavingsEvent implements repository.Savings
func (r *SavingsRepository) AddSavingsEvent(ctx context.Context, ev *domain.SavingsEvent) error {
	_, err := r.db.Exec(ctx, SQLInsertSavingsEvent,
		ev.ID, ev.UserID, ev.Amount, ev.Period, ev.Source, ev.Verified,
		ev.QuestID, ev.Category, ev.Title, ev.XPAwarded, ev.CreatedAt, ev.UpdatedAt)
	if err != nil {
		if isPgError(err, PgErrorCodeForeignKeyViolation) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveSavingsEvent, err)
	}
	return nil
}

// UpdateSavingsEvent implements repository.Savings
func (r *SavingsRepository) UpdateSavingsEvent(ctx context.Context, ev *domain.SavingsEvent) error {
	tag, err := r.db.Exec(ctx, SQLUpdateSavingsEvent,
		ev.ID, ev.UserID, ev.Amount, ev.Period, ev.Source, ev.Verified,
		ev.QuestID, ev.Category, ev.Title, ev.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveSavingsEvent, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSavingsEventNotFound
	}
	return nil
}

// DeleteSavingsEvent implements repository.Savings
func (r *SavingsRepository) DeleteSavingsEvent(ctx context.Context, userID, eventID string) error {
	tag, err := r.db.Exec(ctx, SQLDeleteSavingsEvent, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete savings event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSavingsEventNotFound
	}
	return nil
}

// GetSavingsEvent implements repository.Savings
func (r *SavingsRepository) GetSavingsEvent(ctx context.Context, userID, eventID string) (*domain.SavingsEvent, error) {
	ev, err := scanSavingsEvent(r.db.QueryRow(ctx, SQLSelectSavingsEvent, eventID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSavingsEventNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadSavingsEvents, err)
	}
	return &ev, nil
}

// ListSavingsEvents implements repository.Savings
func (r *SavingsRepository) ListSavingsEvents(ctx context.Context, userID string) ([]domain.SavingsEvent, error) {
	rows, err := r.db.Query(ctx, SQLListSavingsEvents, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadSavingsEvents, err)
	}
	defer rows.Close()

	events := []domain.SavingsEvent{}
	for rows.Next() {
		ev, err := scanSavingsEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadSavingsEvents, err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadSavingsEvents, err)
	}
	return events, nil
}

func scanSavingsEvent(row pgx.Row) (domain.SavingsEvent, error) {
	var ev domain.SavingsEvent
	err := row.Scan(
		&ev.ID,
		&ev.UserID,
		&ev.Amount,
		&ev.Period,
		&ev.Source,
		&ev.Verified,
		&ev.QuestID,
		&ev.Category,
		&ev.Title,
		&ev.XPAwarded,
		&ev.CreatedAt,
		&ev.UpdatedAt,
	)
	return ev, err
}

package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moniyo/financequest/internal/repository"
)

type activityRepository struct {
	db *pgxpool.Pool
}

// NewActivityRepository creates the PostgreSQL activity history
func NewActivityRepository(db *pgxpool.Pool) repository.EventLog {
	return &activityRepository{db: db}
}

// AppendActivity implements repository.EventLog
func (r *activityRepository) AppendActivity(ctx context.Context, a repository.Activity) error {
	payload, err := json.Marshal(a.Payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveActivity, err)
	}
	if _, err := r.db.Exec(ctx, SQLInsertActivity, a.ID, a.UserID, a.Type, a.Source, payload, a.OccurredAt); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveActivity, err)
	}
	return nil
}

// ListActivity implements repository.EventLog
func (r *activityRepository) ListActivity(ctx context.Context, userID string, limit int) ([]repository.Activity, error) {
	rows, err := r.db.Query(ctx, SQLListActivity, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadActivity, err)
	}
	defer rows.Close()

	var out []repository.Activity
	for rows.Next() {
		var (
			a       repository.Activity
			payload []byte
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Source, &payload, &a.OccurredAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadActivity, err)
		}
		if err := json.Unmarshal(payload, &a.Payload); err != nil {
			return nil, fmt.Errorf("%s: activity %s: %w", ErrMsgFailedToLoadActivity, a.ID, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadActivity, err)
	}
	return out, nil
}

// PruneActivity implements repository.EventLog
func (r *activityRepository) PruneActivity(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, SQLPruneActivity, before)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToPruneActivity, err)
	}
	return tag.RowsAffected(), nil
}

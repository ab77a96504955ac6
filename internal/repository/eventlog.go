package repository

import (
	"context"
	"time"
)

// Activity is one progression event in a user's history
type Activity struct {
	ID         string         `json:"id"`
	UserID     string         `json:"user_id"`
	Type       string         `json:"type"`
	Source     string         `json:"source,omitempty"`
	Payload    map[string]any `json:"payload"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// EventLog stores the per-user activity history
type EventLog interface {
	// AppendActivity stores one entry. IDs are assigned by the caller.
	AppendActivity(ctx context.Context, a Activity) error

	// ListActivity returns up to limit entries for a user, newest first
	ListActivity(ctx context.Context, userID string, limit int) ([]Activity, error)

	// PruneActivity deletes entries that occurred before the cutoff and reports how many
	PruneActivity(ctx context.Context, before time.Time) (int64, error)
}

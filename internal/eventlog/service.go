// Package eventlog keeps each user's activity history of progression events.
package eventlog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/moniyo/financequest/internal/event"
	"github.com/moniyo/financequest/internal/logger"
	"github.com/moniyo/financequest/internal/repository"
)

// LoggedTypes are the event types recorded in the activity history
var LoggedTypes = []event.Type{
	event.XPEarned,
	event.LevelUp,
	event.BadgeUnlocked,
	event.MilestoneUnlocked,
	event.QuestCompleted,
	event.SavingsChanged,
}

// Service records and serves activity history
type Service interface {
	// Subscribe registers the recorder on the bus
	Subscribe(bus event.Bus) error

	// RecentForUser returns the latest activity of a user, newest first
	RecentForUser(ctx context.Context, userID string, limit int) ([]repository.Activity, error)

	// Prune removes activity older than retention
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

type service struct {
	repo repository.EventLog
	now  func() time.Time
}

// Option configures the service
type Option func(*service)

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// NewService creates a new activity service
func NewService(repo repository.EventLog, opts ...Option) Service {
	s := &service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers event handlers for all logged event types
func (s *service) Subscribe(bus event.Bus) error {
	for _, eventType := range LoggedTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}
	return nil
}

// handleEvent flattens the typed payload into one activity entry. Events
// that name no user are skipped.
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[map[string]any](evt.Payload)
	if err != nil || payload == nil {
		log.Debug(LogMsgEventPayloadUnreadable, LogFieldType, evt.Type, LogFieldError, err)
		return nil
	}

	userID, _ := payload[PayloadKeyUserID].(string)
	if userID == "" {
		log.Debug(LogMsgEventWithoutUser, LogFieldType, evt.Type)
		return nil
	}
	delete(payload, PayloadKeyUserID)

	source, _ := evt.GetMetadataValue(event.MetadataKeySource).(string)
	a := repository.Activity{
		ID:         uuid.NewString(),
		UserID:     userID,
		Type:       string(evt.Type),
		Source:     source,
		Payload:    payload,
		OccurredAt: s.now().UTC(),
	}
	if err := s.repo.AppendActivity(ctx, a); err != nil {
		log.Error(LogMsgFailedToRecordActivity, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}

	log.Debug(LogMsgActivityRecorded, LogFieldType, evt.Type, LogFieldUserID, userID)
	return nil
}

// RecentForUser returns the latest activity of a user
func (s *service) RecentForUser(ctx context.Context, userID string, limit int) ([]repository.Activity, error) {
	return s.repo.ListActivity(ctx, userID, limit)
}

// Prune removes activity older than retention
func (s *service) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	return s.repo.PruneActivity(ctx, s.now().UTC().Add(-retention))
}

// Package analytics forwards progression events to PostHog. Delivery is
// best effort: failures are logged and never reach the publisher.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/posthog/posthog-go"

	"github.com/moniyo/financequest/internal/event"
	"github.com/moniyo/financequest/internal/logger"
)

// Client is the subset of posthog.Client used by the sink
type Client interface {
	Enqueue(msg posthog.Message) error
	Close() error
}

// PostHogSink maps the four analytics events onto PostHog captures
type PostHogSink struct {
	client Client
	now    func() time.Time
}

// NewPostHogSink wraps an existing client
func NewPostHogSink(client Client) *PostHogSink {
	return &PostHogSink{client: client, now: time.Now}
}

// NewPostHogClient builds a real client. An empty endpoint uses the PostHog default.
func NewPostHogClient(apiKey, endpoint string) (posthog.Client, error) {
	cfg := posthog.Config{}
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	client, err := posthog.NewWithConfig(apiKey, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create posthog client: %w", err)
	}
	return client, nil
}

// Register subscribes the sink to every analytics event type
func (s *PostHogSink) Register(bus event.Bus) {
	for _, t := range event.AnalyticsTypes {
		bus.Subscribe(t, s.HandleEvent)
	}
}

// HandleEvent enqueues one capture. It always returns nil.
func (s *PostHogSink) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	capture, err := s.toCapture(evt)
	if err != nil {
		log.Warn(LogMsgPayloadUnreadable, "type", evt.Type, "error", err)
		return nil
	}
	if err := s.client.Enqueue(capture); err != nil {
		log.Warn(LogMsgCaptureFailed, "type", evt.Type, "error", err)
	}
	return nil
}

// Close flushes pending captures
func (s *PostHogSink) Close(ctx context.Context) {
	if err := s.client.Close(); err != nil {
		logger.FromContext(ctx).Warn(LogMsgSinkCloseFailed, "error", err)
	}
}

func (s *PostHogSink) toCapture(evt event.Event) (posthog.Capture, error) {
	props := posthog.NewProperties().Set(PropertySchema, evt.Version)
	var userID string

	switch evt.Type {
	case event.XPEarned:
		p, err := event.DecodePayload[event.XPEarnedPayloadV1](evt.Payload)
		if err != nil {
			return posthog.Capture{}, err
		}
		userID = p.UserID
		props.Set(PropertySource, p.Source).Set(PropertyAmount, p.Amount)
		if p.QuestID != "" {
			props.Set(PropertyQuestID, p.QuestID)
		}

	case event.LevelUp:
		p, err := event.DecodePayload[event.LevelUpPayloadV1](evt.Payload)
		if err != nil {
			return posthog.Capture{}, err
		}
		userID = p.UserID
		props.Set(PropertyLevel, p.Level).Set(PropertyXPTotal, p.XPTotal)

	case event.BadgeUnlocked:
		p, err := event.DecodePayload[event.BadgeUnlockedPayloadV1](evt.Payload)
		if err != nil {
			return posthog.Capture{}, err
		}
		userID = p.UserID
		props.Set(PropertyBadgeID, p.BadgeID)

	case event.MilestoneUnlocked:
		p, err := event.DecodePayload[event.MilestoneUnlockedPayloadV1](evt.Payload)
		if err != nil {
			return posthog.Capture{}, err
		}
		userID = p.UserID
		props.Set(PropertyAmount, p.Amount).Set(PropertyImpactTotal, p.ImpactTotal)

	default:
		return posthog.Capture{}, fmt.Errorf("unsupported analytics event %q", evt.Type)
	}

	if userID == "" {
		userID = anonymousDistinctID
	}
	return posthog.Capture{
		DistinctId: userID,
		Event:      string(evt.Type),
		Properties: props,
		Timestamp:  s.now().UTC(),
	}, nil
}

// NopClient discards every capture. It stands in when no API key is configured.
type NopClient struct{}

// Enqueue implements Client
func (NopClient) Enqueue(posthog.Message) error { return nil }

// Close implements Client
func (NopClient) Close() error { return nil }

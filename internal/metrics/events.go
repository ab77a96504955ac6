package metrics

import (
	"context"
	"strconv"

	"github.com/moniyo/financequest/internal/event"
	"github.com/moniyo/financequest/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all progression events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.XPEarned,
		event.LevelUp,
		event.BadgeUnlocked,
		event.MilestoneUnlocked,
		event.QuestCompleted,
		event.SavingsChanged,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.XPEarned:
		var p event.XPEarnedPayloadV1
		if p, err = event.DecodePayload[event.XPEarnedPayloadV1](evt.Payload); err == nil {
			XPAwarded.WithLabelValues(p.Source).Add(float64(p.Amount))
			if p.Requested > p.Amount {
				XPCapped.WithLabelValues(p.Source).Inc()
			}
		}

	case event.LevelUp:
		var p event.LevelUpPayloadV1
		if p, err = event.DecodePayload[event.LevelUpPayloadV1](evt.Payload); err == nil {
			LevelUps.WithLabelValues(strconv.Itoa(p.Level)).Inc()
		}

	case event.BadgeUnlocked:
		var p event.BadgeUnlockedPayloadV1
		if p, err = event.DecodePayload[event.BadgeUnlockedPayloadV1](evt.Payload); err == nil {
			BadgesUnlocked.WithLabelValues(p.BadgeID).Inc()
		}

	case event.MilestoneUnlocked:
		var p event.MilestoneUnlockedPayloadV1
		if p, err = event.DecodePayload[event.MilestoneUnlockedPayloadV1](evt.Payload); err == nil {
			MilestonesUnlocked.WithLabelValues(strconv.Itoa(p.Amount)).Inc()
		}

	case event.QuestCompleted:
		var p event.QuestCompletedPayloadV1
		if p, err = event.DecodePayload[event.QuestCompletedPayloadV1](evt.Payload); err == nil {
			QuestsCompleted.WithLabelValues(p.Category).Inc()
		}

	case event.SavingsChanged:
		var p event.SavingsChangedPayloadV1
		if p, err = event.DecodePayload[event.SavingsChangedPayloadV1](evt.Payload); err == nil {
			SavingsChanges.WithLabelValues(p.Change).Inc()
		}
	}

	if err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgEventPayloadUndecodable, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/moniyo/financequest/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Progression event types
const (
	XPEarned           Type = Type(domain.EventTypeXPEarned)
	LevelUp            Type = Type(domain.EventTypeLevelUp)
	BadgeUnlocked      Type = Type(domain.EventTypeBadgeUnlocked)
	MilestoneUnlocked  Type = Type(domain.EventTypeMilestoneUnlocked)
	QuestCompleted     Type = Type(domain.EventTypeQuestCompleted)
	SavingsChanged     Type = Type(domain.EventTypeSavingsChanged)
	DailyResetComplete Type = Type(domain.EventTypeDailyResetComplete)
)

// AnalyticsTypes are the events forwarded to external sinks
var AnalyticsTypes = []Type{XPEarned, LevelUp, BadgeUnlocked, MilestoneUnlocked}

// XPEarnedPayloadV1 is the typed payload for xp_earned events
type XPEarnedPayloadV1 struct {
	UserID    string `json:"user_id"`
	Source    string `json:"source"`
	Amount    int    `json:"amount"`
	QuestID   string `json:"quest_id,omitempty"`
	Requested int    `json:"requested,omitempty"` // pre-cap amount when the daily cap applied
	XPTotal   int64  `json:"xp_total"`
}

// LevelUpPayloadV1 is the typed payload for level_up events
type LevelUpPayloadV1 struct {
	UserID        string `json:"user_id"`
	Level         int    `json:"level"`
	PreviousLevel int    `json:"previous_level"`
	XPTotal       int64  `json:"xp_total"`
}

// BadgeUnlockedPayloadV1 is the typed payload for badge_unlocked events
type BadgeUnlockedPayloadV1 struct {
	UserID  string `json:"user_id"`
	BadgeID string `json:"badge_id"`
}

// MilestoneUnlockedPayloadV1 is the typed payload for milestone_unlocked events
type MilestoneUnlockedPayloadV1 struct {
	UserID      string  `json:"user_id"`
	Amount      int     `json:"amount"`
	ImpactTotal float64 `json:"impact_total"`
}

// QuestCompletedPayloadV1 is the typed payload for quest completion events
type QuestCompletedPayloadV1 struct {
	UserID   string `json:"user_id"`
	QuestID  string `json:"quest_id"`
	Category string `json:"category,omitempty"`
	Score    *int   `json:"score,omitempty"`
}

// SavingsChangedPayloadV1 is the typed payload for savings change events
type SavingsChangedPayloadV1 struct {
	UserID  string  `json:"user_id"`
	EventID string  `json:"event_id"`
	Change  string  `json:"change"`
	Amount  float64 `json:"amount"`
	Period  string  `json:"period"`
}

// DailyResetCompletePayloadV1 is the typed payload for daily reset complete events
type DailyResetCompletePayloadV1 struct {
	ResetTime       time.Time `json:"reset_time"`
	RecordsAffected int64     `json:"records_affected"`
}

func newEvent(t Type, payload interface{}, source string) Event {
	md := map[string]interface{}{
		MetadataKeyTimestamp: time.Now().UTC().Unix(),
	}
	if source != "" {
		md[MetadataKeySource] = source
	}
	return Event{
		Version:  EventSchemaVersion,
		Type:     t,
		Payload:  payload,
		Metadata: md,
	}
}

// NewXPEarnedEvent creates a new xp_earned event
func NewXPEarnedEvent(userID, source string, amount, requested int, questID string, xpTotal int64) Event {
	p := XPEarnedPayloadV1{
		UserID:  userID,
		Source:  source,
		Amount:  amount,
		QuestID: questID,
		XPTotal: xpTotal,
	}
	if requested != amount {
		p.Requested = requested
	}
	return newEvent(XPEarned, p, source)
}

// NewLevelUpEvent creates a new level_up event
func NewLevelUpEvent(userID string, previousLevel, level int, xpTotal int64) Event {
	return newEvent(LevelUp, LevelUpPayloadV1{
		UserID:        userID,
		Level:         level,
		PreviousLevel: previousLevel,
		XPTotal:       xpTotal,
	}, "")
}

// NewBadgeUnlockedEvent creates a new badge_unlocked event
func NewBadgeUnlockedEvent(userID, badgeID string) Event {
	return newEvent(BadgeUnlocked, BadgeUnlockedPayloadV1{UserID: userID, BadgeID: badgeID}, "")
}

// NewMilestoneUnlockedEvent creates a new milestone_unlocked event
func NewMilestoneUnlockedEvent(userID string, amount int, impactTotal float64) Event {
	return newEvent(MilestoneUnlocked, MilestoneUnlockedPayloadV1{
		UserID:      userID,
		Amount:      amount,
		ImpactTotal: impactTotal,
	}, "")
}

// NewQuestCompletedEvent creates a new quest completion event
func NewQuestCompletedEvent(userID, questID, category string, score *int) Event {
	return newEvent(QuestCompleted, QuestCompletedPayloadV1{
		UserID:   userID,
		QuestID:  questID,
		Category: category,
		Score:    score,
	}, domain.XPSourceQuest)
}

// NewSavingsChangedEvent creates a new savings change event
func NewSavingsChangedEvent(userID, change string, ev domain.SavingsEvent) Event {
	return newEvent(SavingsChanged, SavingsChangedPayloadV1{
		UserID:  userID,
		EventID: ev.ID,
		Change:  change,
		Amount:  ev.Amount,
		Period:  ev.Period,
	}, ev.Source)
}

// NewDailyResetCompleteEvent creates a new daily reset complete event
func NewDailyResetCompleteEvent(resetTime time.Time, recordsAffected int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DailyResetComplete,
		Payload: DailyResetCompletePayloadV1{
			ResetTime:       resetTime,
			RecordsAffected: recordsAffected,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher is the fire-and-forget side used by services
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

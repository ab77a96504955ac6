package domain

// Event type constants used across the application for event bus subscriptions,
// analytics forwarding and metrics tracking.
//
// The four gamification events keep the names the analytics sink expects.
const (
	// EventTypeXPEarned is published once per XP award (quest or savings)
	EventTypeXPEarned = "xp_earned"

	// EventTypeLevelUp is published when an award moves the user to a higher level
	EventTypeLevelUp = "level_up"

	// EventTypeBadgeUnlocked is published once per newly unlocked badge
	EventTypeBadgeUnlocked = "badge_unlocked"

	// EventTypeMilestoneUnlocked is published once per newly crossed impact milestone
	EventTypeMilestoneUnlocked = "milestone_unlocked"

	// EventTypeQuestCompleted is published after a quest completion is persisted
	EventTypeQuestCompleted = "quest.completed"

	// EventTypeSavingsChanged is published after a savings event is created, updated or deleted
	EventTypeSavingsChanged = "savings.changed"

	// EventTypeDailyResetComplete is published when the daily cap reset completes
	EventTypeDailyResetComplete = "daily_reset.complete"
)

// XP sources reported on xp_earned events
const (
	XPSourceQuest   = "quest"
	XPSourceSavings = "savings"
)

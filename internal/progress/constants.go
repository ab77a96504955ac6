package progress

import "time"

// Cache defaults
const (
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 30 * time.Second

	// CacheSchemaVersion is bumped when the cached snapshot shape changes
	CacheSchemaVersion = "1.0"
)

// Log messages
const (
	LogMsgCapLedgerUnavailable   = "Daily cap ledger unavailable, awarding uncapped"
	LogMsgUsageUnavailable       = "Daily cap usage unavailable"
	LogMsgXPCapped               = "Daily XP cap applied"
	LogMsgImpactLimitReached     = "Daily impact event limit reached, no XP awarded"
	LogMsgQuestCompleted         = "Quest completed"
	LogMsgSavingsChanged         = "Savings change applied"
	LogMsgProgressInitialized    = "Progress document created"
	LogMsgCompensatingDelete     = "Removing savings event after failed progress update"
	LogMsgCompensatingDeleteFail = "Failed to remove orphaned savings event"
	LogMsgRefundFailed           = "Failed to refund daily cap budget"
	LogMsgQuestImpactPending     = "Quest impact not recorded, left pending"
	LogMsgQuestImpactRecorded    = "Pending quest impact recorded"
)

// Error message prefixes used when wrapping persistence errors
const (
	ErrContextGetProgress    = "failed to get progress"
	ErrContextUpdateProgress = "failed to update progress"
	ErrContextCreateProgress = "failed to create progress"
	ErrContextListSavings    = "failed to list savings events"
	ErrContextAddSavings     = "failed to add savings event"
	ErrContextUpdateSavings  = "failed to update savings event"
	ErrContextDeleteSavings  = "failed to delete savings event"
	ErrContextGetSavings     = "failed to get savings event"
	ErrContextGetQuest       = "failed to get quest"
	ErrContextQuestImpact    = "failed to record quest impact"
)

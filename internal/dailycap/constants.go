package dailycap

import "time"

// Counter kinds
const (
	CounterXP     = "xp"
	CounterImpact = "impact"
)

const (
	// RedisKeyPrefix namespaces daily cap counters
	RedisKeyPrefix = "dailycap"

	// RedisKeyTTL keeps a day bucket long enough to cover every time zone
	RedisKeyTTL = 48 * time.Hour
)

// Error Message Constants
const (
	ErrMsgReserveFailed = "failed to reserve %s allowance: %w"
	ErrMsgReleaseFailed = "failed to release %s allowance: %w"
	ErrMsgUsageFailed   = "failed to read %s usage: %w"
)

// Log Message Constants
const (
	LogMsgLedgerUnavailable = "Daily cap ledger unavailable, allowing award"
)

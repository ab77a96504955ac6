package event

import "time"

// EventSchemaVersion is stamped on every event built by the New*Event helpers
const EventSchemaVersion = "1.0"

const (
	MetadataKeySource    = "source"
	MetadataKeyTimestamp = "timestamp"
)

// RetryQueueBufferSize is the number of failed events waiting for retry
const RetryQueueBufferSize = 1000

// Dead-letter file
const (
	DeadLetterFilePermissions = 0o644

	// DeadLetterMaxLineBytes bounds a single entry when reading the file back
	DeadLetterMaxLineBytes = 1 << 20
)

const (
	ErrMsgOpenDeadLetter  = "failed to open dead-letter file"
	ErrMsgParseDeadLetter = "failed to parse dead-letter file"
)

const (
	LogMsgEventPublishFailed    = "event publish failed, queued for retry"
	LogMsgRetryQueueFull        = "retry queue full, dead-lettering event"
	LogMsgDeadLetterWriteFailed = "failed to write dead-letter entry"
	LogMsgEventDeadLettered     = "event dead-lettered"
	LogMsgEventRetryExhausted   = "event retries exhausted"
	LogMsgEventRetryFailed      = "event retry failed, rescheduling"
	LogMsgEventRetrySucceeded   = "event retry succeeded"
	LogMsgQueueDrainedShutdown  = "drained retry queue on shutdown"
	LogMsgShutdownTimeout       = "timed out waiting for retry worker"

	LogMsgHandlerErrorFormat = "%d handler(s) failed for event %s: %v"
)

// CalculateRetryDelay doubles baseDelay for every attempt after the first
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return baseDelay << (attempt - 1)
}

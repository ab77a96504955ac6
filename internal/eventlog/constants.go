package eventlog

// PayloadKeyUserID is the payload field naming the user, stored as its own column
const PayloadKeyUserID = "user_id"

// Log messages
const (
	LogMsgEventPayloadUnreadable = "Event payload could not be converted, skipping activity"
	LogMsgEventWithoutUser       = "Event names no user, skipping activity"
	LogMsgFailedToRecordActivity = "Failed to record activity"
	LogMsgActivityRecorded       = "Activity recorded"
	LogMsgCleanupFailed          = "Activity cleanup failed"
	LogMsgCleanupCompleted       = "Activity cleanup completed"
)

// Log field keys
const (
	LogFieldType      = "type"
	LogFieldUserID    = "user_id"
	LogFieldError     = "error"
	LogFieldRemoved   = "removed"
	LogFieldRetention = "retention"
	LogFieldDuration  = "duration"
)

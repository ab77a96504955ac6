package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidUserID         = "Invalid user id"
	ErrMsgInvalidQuestID        = "Invalid quest id"
	ErrMsgInvalidEventID        = "Invalid savings event id"
	ErrMsgInvalidLimit          = "Invalid limit parameter"

	ErrMsgGetProgressFailed    = "Failed to get progress"
	ErrMsgInitProgressFailed   = "Failed to create progress"
	ErrMsgCompleteQuestFailed  = "Failed to complete quest"
	ErrMsgRecordSavingsFailed  = "Failed to record savings"
	ErrMsgUpdateSavingsFailed  = "Failed to update savings"
	ErrMsgDeleteSavingsFailed  = "Failed to delete savings"
	ErrMsgListSavingsFailed    = "Failed to list savings"
	ErrMsgGetActivityFailed    = "Failed to get activity"
	ErrMsgDatabaseUnavailable  = "database connection failed"
	ErrMsgUnauthorized         = "Unauthorized"
	ErrMsgRequestBodyTooLarge  = "Request body too large"
	ErrMsgUnsupportedMediaType = "Content-Type must be application/json"
)

// User-facing messages derived from domain errors
const (
	ErrMsgGenericServerError      = "Something went wrong"
	ErrMsgUserNotFoundError       = "No progress found for this user"
	ErrMsgProgressExistsError     = "Progress already exists for this user"
	ErrMsgQuestNotFoundError      = "Quest not found"
	ErrMsgQuestCompletedError     = "Quest already completed"
	ErrMsgSavingsNotFoundError    = "Savings event not found"
	ErrMsgInvalidInputError       = "Invalid request. Please check your inputs."
	ErrMsgServiceUnavailableError = "Server is temporarily unavailable. Please try again later."
)

// Health status values
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
)

package firestore

// Collection and field names
const (
	CollectionUsers        = "users"
	CollectionSavingsEvent = "savingsEvents"
	CollectionActivity     = "activity"

	FieldXPTotal         = "xpTotal"
	FieldGamification    = "gamification"
	FieldCompletedQuests = "completedQuests"
	FieldStreak          = "streak"
	FieldCreatedAt       = "createdAt"
	FieldUpdatedAt       = "updatedAt"
	FieldOccurredAt      = "occurredAt"
)

// defaultActivityLimit bounds activity queries that pass no limit
const defaultActivityLimit = 100

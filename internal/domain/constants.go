package domain

// Savings periods
const (
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// Savings sources
const (
	SavingsSourceManual   = "manual"
	SavingsSourceQuest    = "quest"
	SavingsSourceQuickWin = "quick_win"
)

// Quest difficulty tiers
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Savings change kinds
const (
	SavingsChangeCreated = "created"
	SavingsChangeUpdated = "updated"
	SavingsChangeDeleted = "deleted"
)

// DayLayout formats the calendar day used for streaks and daily caps
const DayLayout = "2006-01-02"

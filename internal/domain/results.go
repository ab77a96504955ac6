package domain

// QuestCompletionResult contains the outcome of completing a quest
type QuestCompletionResult struct {
	QuestID       string        `json:"quest_id"`
	XPGained      int           `json:"xp_gained"`
	XPCapped      bool          `json:"xp_capped"`
	NewXP         int64         `json:"new_xp"`
	PreviousLevel int           `json:"previous_level"`
	Level         int           `json:"level"`
	LeveledUp     bool          `json:"leveled_up"`
	NewBadges     []string      `json:"new_badges"`
	NewMilestones []int         `json:"new_milestones"`
	SavingsEvent  *SavingsEvent `json:"savings_event,omitempty"`
	ImpactPending bool          `json:"impact_pending,omitempty"`
}

// SavingsChangeResult contains the outcome of creating, updating or deleting a savings event
type SavingsChangeResult struct {
	Change            string        `json:"change"`
	Event             *SavingsEvent `json:"event,omitempty"`
	XPGained          int           `json:"xp_gained"`
	NewXP             int64         `json:"new_xp"`
	Level             int           `json:"level"`
	LeveledUp         bool          `json:"leveled_up"`
	NewMilestones     []int         `json:"new_milestones"`
	NewBadges         []string      `json:"new_badges"`
	TotalAnnualImpact float64       `json:"total_annual_impact"`
}

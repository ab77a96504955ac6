package domain

// Quest is a catalog entry a user can complete
type Quest struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Category    string       `json:"category"`
	Difficulty  string       `json:"difficulty,omitempty"`
	XP          int          `json:"xp,omitempty"`
	XPReward    int          `json:"xpReward,omitempty"`
	StarterPack bool         `json:"starterPack,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Impact      *QuestImpact `json:"impact,omitempty"`
}

// QuestImpact is the estimated saving recorded when the quest is completed
type QuestImpact struct {
	Amount float64 `json:"amount"`
	Period string  `json:"period"`
}

// QuestCatalogConfig is the on-disk shape of the quest catalog
type QuestCatalogConfig struct {
	Version string  `json:"version"`
	Quests  []Quest `json:"quests"`
}

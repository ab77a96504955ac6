package domain

import "time"

// SavingsEvent is a recorded saving reported by the user or produced by a quest
type SavingsEvent struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Amount    float64   `json:"amount"`
	Period    string    `json:"period"`
	Source    string    `json:"source"`
	Verified  bool      `json:"verified"`
	QuestID   string    `json:"quest_id,omitempty"`
	Category  string    `json:"category,omitempty"`
	Title     string    `json:"title,omitempty"`
	XPAwarded int       `json:"xp_awarded"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

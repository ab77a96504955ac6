package domain

import "time"

// UserProgress is the per-user progression document.
// It is created at account creation and only mutated through the progress service.
type UserProgress struct {
	UserID          string           `json:"user_id"`
	XPTotal         int64            `json:"xp_total"`
	Gamification    Gamification     `json:"gamification"`
	CompletedQuests []CompletedQuest `json:"completed_quests"`
	Streak          Streak           `json:"streak"`
	CreatedAt       time.Time        `json:"created_at"`
}

// Gamification holds the derived progression state persisted with the user.
// Milestones maps the milestone amount key to its unlock time; a zero time marks
// a milestone unlocked before timestamps were recorded.
type Gamification struct {
	Level       int                  `json:"level"`
	NextLevelXP *int64               `json:"next_level_xp"`
	Badges      []string             `json:"badges"`
	Milestones  map[string]time.Time `json:"milestones"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// CompletedQuest records a single quest completion
type CompletedQuest struct {
	QuestID     string    `json:"quest_id"`
	Category    string    `json:"category,omitempty"`
	StarterPack bool      `json:"starter_pack,omitempty"`
	XP          int       `json:"xp"`
	Score       *int      `json:"score,omitempty"`
	CompletedAt time.Time `json:"completed_at"`

	// ImpactPending is set while the quest's impact saving is unrecorded
	ImpactPending bool `json:"impact_pending,omitempty"`
}

// Streak tracks consecutive active days
type Streak struct {
	Current       int    `json:"current"`
	LastActiveDay string `json:"last_active_day,omitempty"`
}

// NewUserProgress returns the default document for a new user
func NewUserProgress(userID string, now time.Time) *UserProgress {
	return &UserProgress{
		UserID:          userID,
		XPTotal:         0,
		CompletedQuests: []CompletedQuest{},
		Gamification: Gamification{
			Level:      1,
			Badges:     []string{},
			Milestones: map[string]time.Time{},
			UpdatedAt:  now,
		},
		CreatedAt: now,
	}
}

// HasCompletedQuest reports whether questID is already in the completion list
func (p *UserProgress) HasCompletedQuest(questID string) bool {
	for _, cq := range p.CompletedQuests {
		if cq.QuestID == questID {
			return true
		}
	}
	return false
}

// ImpactPending reports whether questID was completed but its impact saving
// is still unrecorded
func (p *UserProgress) ImpactPending(questID string) bool {
	for _, cq := range p.CompletedQuests {
		if cq.QuestID == questID {
			return cq.ImpactPending
		}
	}
	return false
}

// ClearImpactPending marks the impact of questID as recorded
func (p *UserProgress) ClearImpactPending(questID string) {
	for i := range p.CompletedQuests {
		if p.CompletedQuests[i].QuestID == questID {
			p.CompletedQuests[i].ImpactPending = false
		}
	}
}

// HasBadge reports whether the badge is already unlocked
func (p *UserProgress) HasBadge(badgeID string) bool {
	for _, b := range p.Gamification.Badges {
		if b == badgeID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the document
func (p *UserProgress) Clone() *UserProgress {
	if p == nil {
		return nil
	}
	c := *p
	if p.Gamification.NextLevelXP != nil {
		v := *p.Gamification.NextLevelXP
		c.Gamification.NextLevelXP = &v
	}
	c.Gamification.Badges = append([]string{}, p.Gamification.Badges...)
	c.Gamification.Milestones = make(map[string]time.Time, len(p.Gamification.Milestones))
	for k, v := range p.Gamification.Milestones {
		c.Gamification.Milestones[k] = v
	}
	c.CompletedQuests = make([]CompletedQuest, len(p.CompletedQuests))
	for i, cq := range p.CompletedQuests {
		c.CompletedQuests[i] = cq
		if cq.Score != nil {
			s := *cq.Score
			c.CompletedQuests[i].Score = &s
		}
	}
	return &c
}

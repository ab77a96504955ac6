package firestore

import (
	"fmt"
	"time"

	"github.com/moniyo/financequest/internal/domain"
)

// progressDoc is the users/{uid} document as read back from Firestore
type progressDoc struct {
	XPTotal         int64               `firestore:"xpTotal"`
	Gamification    gamificationDoc     `firestore:"gamification"`
	CompletedQuests []completedQuestDoc `firestore:"completedQuests"`
	Streak          streakDoc           `firestore:"streak"`
	CreatedAt       time.Time           `firestore:"createdAt"`
}

type gamificationDoc struct {
	Level       int                    `firestore:"level"`
	NextLevelXP *int64                 `firestore:"nextLevelXP"`
	Badges      []string               `firestore:"badges"`
	Milestones  map[string]interface{} `firestore:"milestones"`
	UpdatedAt   time.Time              `firestore:"updatedAt"`
}

type completedQuestDoc struct {
	QuestID       string    `firestore:"questId"`
	Category      string    `firestore:"category"`
	StarterPack   bool      `firestore:"starterPack"`
	XP            int       `firestore:"xp"`
	Score         *int      `firestore:"score"`
	CompletedAt   time.Time `firestore:"completedAt"`
	ImpactPending bool      `firestore:"impactPending"`
}

type streakDoc struct {
	Current       int    `firestore:"current"`
	LastActiveDay string `firestore:"lastActiveDay"`
}

// savingsDoc is a users/{uid}/savingsEvents/{id} document
type savingsDoc struct {
	Amount    float64   `firestore:"amount"`
	Period    string    `firestore:"period"`
	Source    string    `firestore:"source"`
	Verified  bool      `firestore:"verified"`
	QuestID   string    `firestore:"questId"`
	Category  string    `firestore:"category"`
	Title     string    `firestore:"title"`
	XPAwarded int       `firestore:"xpAwarded"`
	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

// activityDoc is a users/{uid}/activity document. The user id is the parent document.
type activityDoc struct {
	Type       string         `firestore:"type"`
	Source     string         `firestore:"source,omitempty"`
	Payload    map[string]any `firestore:"payload"`
	OccurredAt time.Time      `firestore:"occurredAt"`
}

func (d progressDoc) toDomain(userID string) (*domain.UserProgress, error) {
	milestones, err := decodeMilestones(d.Gamification.Milestones)
	if err != nil {
		return nil, err
	}

	level := d.Gamification.Level
	if level < 1 {
		level = 1
	}

	p := &domain.UserProgress{
		UserID:  userID,
		XPTotal: d.XPTotal,
		Gamification: domain.Gamification{
			Level:       level,
			NextLevelXP: d.Gamification.NextLevelXP,
			Badges:      append([]string{}, d.Gamification.Badges...),
			Milestones:  milestones,
			UpdatedAt:   d.Gamification.UpdatedAt,
		},
		CompletedQuests: make([]domain.CompletedQuest, 0, len(d.CompletedQuests)),
		Streak:          domain.Streak{Current: d.Streak.Current, LastActiveDay: d.Streak.LastActiveDay},
		CreatedAt:       d.CreatedAt,
	}
	for _, cq := range d.CompletedQuests {
		p.CompletedQuests = append(p.CompletedQuests, domain.CompletedQuest{
			QuestID:       cq.QuestID,
			Category:      cq.Category,
			StarterPack:   cq.StarterPack,
			XP:            cq.XP,
			Score:         cq.Score,
			CompletedAt:   cq.CompletedAt,
			ImpactPending: cq.ImpactPending,
		})
	}
	return p, nil
}

// decodeMilestones reads unlock records that may hold timestamps or the
// legacy true marker
func decodeMilestones(raw map[string]interface{}) (map[string]time.Time, error) {
	out := make(map[string]time.Time, len(raw))
	for k, v := range raw {
		at, ok, err := domain.MilestoneMarker(v)
		if err != nil {
			return nil, fmt.Errorf("milestone %s: %w", k, err)
		}
		if ok {
			out[k] = at
		}
	}
	return out, nil
}

// progressFields renders the document as a field map for merge writes.
// Zero milestone times are written back as true.
func progressFields(p *domain.UserProgress) map[string]interface{} {
	milestones := make(map[string]interface{}, len(p.Gamification.Milestones))
	for k, at := range p.Gamification.Milestones {
		if at.IsZero() {
			milestones[k] = true
			continue
		}
		milestones[k] = at.UTC()
	}

	badges := p.Gamification.Badges
	if badges == nil {
		badges = []string{}
	}

	quests := make([]map[string]interface{}, 0, len(p.CompletedQuests))
	for _, cq := range p.CompletedQuests {
		q := map[string]interface{}{
			"questId":     cq.QuestID,
			"category":    cq.Category,
			"starterPack": cq.StarterPack,
			"xp":          cq.XP,
			"completedAt": cq.CompletedAt.UTC(),
		}
		if cq.Score != nil {
			q["score"] = *cq.Score
		}
		if cq.ImpactPending {
			q["impactPending"] = true
		}
		quests = append(quests, q)
	}

	var nextLevelXP interface{}
	if p.Gamification.NextLevelXP != nil {
		nextLevelXP = *p.Gamification.NextLevelXP
	}

	return map[string]interface{}{
		FieldXPTotal: p.XPTotal,
		FieldGamification: map[string]interface{}{
			"level":       p.Gamification.Level,
			"nextLevelXP": nextLevelXP,
			"badges":      badges,
			"milestones":  milestones,
			"updatedAt":   p.Gamification.UpdatedAt.UTC(),
		},
		FieldCompletedQuests: quests,
		FieldStreak: map[string]interface{}{
			"current":       p.Streak.Current,
			"lastActiveDay": p.Streak.LastActiveDay,
		},
		FieldCreatedAt: p.CreatedAt.UTC(),
	}
}

func newSavingsDoc(ev *domain.SavingsEvent) savingsDoc {
	return savingsDoc{
		Amount:    ev.Amount,
		Period:    ev.Period,
		Source:    ev.Source,
		Verified:  ev.Verified,
		QuestID:   ev.QuestID,
		Category:  ev.Category,
		Title:     ev.Title,
		XPAwarded: ev.XPAwarded,
		CreatedAt: ev.CreatedAt.UTC(),
		UpdatedAt: ev.UpdatedAt.UTC(),
	}
}

func (d savingsDoc) toDomain(userID, id string) domain.SavingsEvent {
	return domain.SavingsEvent{
		ID:        id,
		UserID:    userID,
		Amount:    d.Amount,
		Period:    d.Period,
		Source:    d.Source,
		Verified:  d.Verified,
		QuestID:   d.QuestID,
		Category:  d.Category,
		Title:     d.Title,
		XPAwarded: d.XPAwarded,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

package gamification

import "github.com/moniyo/financequest/internal/domain"

// QuestXPInput carries the quest fields that determine its XP
type QuestXPInput struct {
	XP         int
	XPReward   int
	Difficulty string
}

// QuestXPInputFrom extracts the XP fields of a catalog quest
func QuestXPInputFrom(q domain.Quest) QuestXPInput {
	return QuestXPInput{XP: q.XP, XPReward: q.XPReward, Difficulty: q.Difficulty}
}

// SavingsXPInput carries the savings event fields that determine its XP
type SavingsXPInput struct {
	Amount   float64
	Period   string
	Source   string
	Verified bool
	QuestID  string
}

// SavingsXPInputFrom extracts the XP fields of a savings event
func SavingsXPInputFrom(ev domain.SavingsEvent) SavingsXPInput {
	return SavingsXPInput{
		Amount:   ev.Amount,
		Period:   ev.Period,
		Source:   ev.Source,
		Verified: ev.Verified,
		QuestID:  ev.QuestID,
	}
}

// QuestXP returns the XP for completing a quest.
// An explicit xp or xpReward of zero counts as absent and falls through to the
// difficulty table; unknown difficulties use the beginner value.
func (e *Engine) QuestXP(q QuestXPInput, score *int) int {
	base := 0
	switch {
	case q.XP > 0:
		base = q.XP
	case q.XPReward > 0:
		base = q.XPReward
	default:
		var ok bool
		base, ok = difficultyXP[q.Difficulty]
		if !ok {
			base = difficultyXP[domain.DifficultyBeginner]
		}
	}

	if score != nil && *score >= QuizBonusThreshold {
		base += QuizBonusXP
	}
	return base
}

// SavingsXP returns the XP for a savings event. Amounts under the period floor
// earn nothing; otherwise quest origin and verification each add a bonus.
func (e *Engine) SavingsXP(ev SavingsXPInput, source string) int {
	if ev.Amount < savingsFloor(ev.Period) {
		return 0
	}

	xp := 0
	if source == domain.SavingsSourceQuest || ev.Source == domain.SavingsSourceQuest || ev.QuestID != "" {
		xp += SavingsQuestBonusXP
	}
	if ev.Verified {
		xp += SavingsVerifiedBonusXP
	}
	return xp
}

func savingsFloor(period string) float64 {
	if period == domain.PeriodYear {
		return YearlySavingsFloor
	}
	return MonthlySavingsFloor
}

package gamification

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/moniyo/financequest/internal/domain"
)

// CriterionKind identifies the rule a badge is unlocked by
type CriterionKind string

// Criterion kinds
const (
	CriterionCompletedQuests CriterionKind = "completed_quests"
	CriterionStarterQuests   CriterionKind = "starter_quests"
	CriterionQuickWin        CriterionKind = "quick_win"
	CriterionAnnualImpact    CriterionKind = "annual_impact"
	CriterionStreak          CriterionKind = "streak"
	CriterionCategoryEvents  CriterionKind = "category_events"
	CriterionQuestAndImpact  CriterionKind = "quest_and_impact"
	CriterionLevel           CriterionKind = "level"
)

// Criterion is the unlock rule of a badge. The same value drives both the
// evaluation and the rendered description.
type Criterion struct {
	Kind      CriterionKind `json:"kind"`
	Threshold int           `json:"threshold,omitempty"`
	QuestID   string        `json:"quest_id,omitempty"`
}

// BadgeContext is the cumulative user state badge rules are evaluated against
type BadgeContext struct {
	CompletedQuestCount int
	StarterQuestCount   int
	CompletedQuestIDs   []string
	SavingsEvents       []domain.SavingsEvent
	TotalAnnualImpact   decimal.Decimal
	CurrentStreak       int
	CategoryCounts      map[string]int
	Level               int
}

// Satisfied reports whether the context meets the criterion
func (c Criterion) Satisfied(ctx BadgeContext) bool {
	switch c.Kind {
	case CriterionCompletedQuests:
		return ctx.CompletedQuestCount >= c.Threshold
	case CriterionStarterQuests:
		return ctx.StarterQuestCount >= c.Threshold
	case CriterionQuickWin:
		for _, ev := range ctx.SavingsEvents {
			if IsQuickWin(ev) {
				return true
			}
		}
		return false
	case CriterionAnnualImpact:
		return ctx.TotalAnnualImpact.GreaterThanOrEqual(decimal.NewFromInt(int64(c.Threshold)))
	case CriterionStreak:
		return ctx.CurrentStreak >= c.Threshold
	case CriterionCategoryEvents:
		for _, n := range ctx.CategoryCounts {
			if n >= c.Threshold {
				return true
			}
		}
		return false
	case CriterionQuestAndImpact:
		return containsString(ctx.CompletedQuestIDs, c.QuestID) &&
			ctx.TotalAnnualImpact.GreaterThanOrEqual(decimal.NewFromInt(int64(c.Threshold)))
	case CriterionLevel:
		return ctx.Level >= c.Threshold
	default:
		return false
	}
}

// Describe renders the criterion as English text
func (c Criterion) Describe() string {
	switch c.Kind {
	case CriterionCompletedQuests:
		return fmt.Sprintf("Complete %s", plural(c.Threshold, "quest"))
	case CriterionStarterQuests:
		return fmt.Sprintf("Complete %s from the starter pack", plural(c.Threshold, "quest"))
	case CriterionQuickWin:
		return "Record a quick win saving"
	case CriterionAnnualImpact:
		return fmt.Sprintf("Reach %d in annual savings impact", c.Threshold)
	case CriterionStreak:
		return fmt.Sprintf("Stay active %d days in a row", c.Threshold)
	case CriterionCategoryEvents:
		return fmt.Sprintf("Record %s in a single category", plural(c.Threshold, "saving"))
	case CriterionQuestAndImpact:
		return fmt.Sprintf("Complete the %q quest and reach %d in annual savings impact", c.QuestID, c.Threshold)
	case CriterionLevel:
		return fmt.Sprintf("Reach level %d", c.Threshold)
	default:
		return string(c.Kind)
	}
}

// IsQuickWin reports whether a savings event counts as a quick win
func IsQuickWin(ev domain.SavingsEvent) bool {
	return ev.Source == domain.SavingsSourceQuickWin ||
		ev.QuestID == QuestIDCutSubscription ||
		strings.Contains(strings.ToLower(ev.Title), quickWinTitleMarker)
}

// NewBadgeContext builds the badge context from a progress document and the
// user's savings events
func (e *Engine) NewBadgeContext(p *domain.UserProgress, events []domain.SavingsEvent) BadgeContext {
	summary := AggregateSavings(events)
	ctx := BadgeContext{
		SavingsEvents:     events,
		TotalAnnualImpact: summary.TotalAnnualImpact,
		CategoryCounts:    summary.CategoryCounts,
	}
	if p == nil {
		ctx.Level = 1
		return ctx
	}

	ctx.CompletedQuestCount = len(p.CompletedQuests)
	ctx.CompletedQuestIDs = make([]string, 0, len(p.CompletedQuests))
	for _, cq := range p.CompletedQuests {
		ctx.CompletedQuestIDs = append(ctx.CompletedQuestIDs, cq.QuestID)
		if cq.StarterPack {
			ctx.StarterQuestCount++
		}
	}
	ctx.CurrentStreak = p.Streak.Current
	ctx.Level = e.Level(p.XPTotal)
	return ctx
}

// CheckBadges returns the badges whose criteria now hold and that are not yet
// unlocked, in catalog order. Unlocked badges are never returned again.
func (e *Engine) CheckBadges(ctx BadgeContext, unlocked []string) []string {
	have := make(map[string]struct{}, len(unlocked))
	for _, id := range unlocked {
		have[id] = struct{}{}
	}

	var newly []string
	for _, b := range e.badges {
		if _, ok := have[b.ID]; ok {
			continue
		}
		if b.Criterion.Satisfied(ctx) {
			newly = append(newly, b.ID)
		}
	}
	return newly
}

// MergeBadges appends newly unlocked ids to the existing list, keeping unlock
// order and dropping duplicates
func MergeBadges(existing, newly []string) []string {
	merged := make([]string, 0, len(existing)+len(newly))
	seen := make(map[string]struct{}, len(existing)+len(newly))
	for _, list := range [][]string{existing, newly} {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			merged = append(merged, id)
		}
	}
	return merged
}

func containsString(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

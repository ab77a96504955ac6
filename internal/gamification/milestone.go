package gamification

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// NextMilestone is the first milestone not yet reached
type NextMilestone struct {
	Amount    int     `json:"amount"`
	Remaining float64 `json:"remaining"`
}

// MilestoneKey is the key under which a milestone unlock is persisted
func MilestoneKey(amount int) string {
	return strconv.Itoa(amount)
}

// CheckMilestones returns every milestone the total has reached that is not yet
// recorded in unlocked, in ascending order. A single large saving can cross
// several milestones at once; all of them are returned.
func (e *Engine) CheckMilestones(totalAnnualImpact decimal.Decimal, unlocked map[string]time.Time) []int {
	var crossed []int
	for _, m := range e.milestones {
		if totalAnnualImpact.LessThan(decimal.NewFromInt(int64(m))) {
			break
		}
		if _, ok := unlocked[MilestoneKey(m)]; ok {
			continue
		}
		crossed = append(crossed, m)
	}
	return crossed
}

// NextMilestone returns the first milestone above the total, or nil when all are reached.
// It compares raw amounts only and ignores unlock records.
func (e *Engine) NextMilestone(totalAnnualImpact decimal.Decimal) *NextMilestone {
	for _, m := range e.milestones {
		threshold := decimal.NewFromInt(int64(m))
		if totalAnnualImpact.LessThan(threshold) {
			remaining, _ := threshold.Sub(totalAnnualImpact).Float64()
			return &NextMilestone{Amount: m, Remaining: remaining}
		}
	}
	return nil
}

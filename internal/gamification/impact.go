package gamification

import (
	"github.com/shopspring/decimal"

	"github.com/moniyo/financequest/internal/domain"
)

var monthsPerYear = decimal.NewFromInt(12)

// SavingsSummary aggregates a user's savings events
type SavingsSummary struct {
	TotalAnnualImpact decimal.Decimal
	CategoryCounts    map[string]int
	QuickWins         int
	Events            int
}

// Annualize converts an amount for the given period to a yearly figure.
// Monthly amounts are multiplied by 12; anything else is taken as yearly.
// Negative amounts contribute nothing.
func Annualize(amount float64, period string) decimal.Decimal {
	d := decimal.NewFromFloat(amount)
	if d.IsNegative() {
		return decimal.Zero
	}
	if period == domain.PeriodMonth {
		return d.Mul(monthsPerYear)
	}
	return d
}

// AggregateSavings sums annualized impact and counts events per category
func AggregateSavings(events []domain.SavingsEvent) SavingsSummary {
	summary := SavingsSummary{
		TotalAnnualImpact: decimal.Zero,
		CategoryCounts:    make(map[string]int),
	}
	for _, ev := range events {
		summary.Events++
		summary.TotalAnnualImpact = summary.TotalAnnualImpact.Add(Annualize(ev.Amount, ev.Period))
		if ev.Category != "" {
			summary.CategoryCounts[ev.Category]++
		}
		if IsQuickWin(ev) {
			summary.QuickWins++
		}
	}
	return summary
}

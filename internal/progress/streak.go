package progress

import (
	"time"

	"github.com/moniyo/financequest/internal/domain"
)

// touchStreak marks today as active. Activity on the day after the last
// active day extends the streak; a gap restarts it at 1.
func touchStreak(s domain.Streak, today string) domain.Streak {
	if s.LastActiveDay == today {
		return s
	}

	next := 1
	if last, err := time.Parse(domain.DayLayout, s.LastActiveDay); err == nil &&
		last.AddDate(0, 0, 1).Format(domain.DayLayout) == today {
		next = s.Current + 1
	}
	return domain.Streak{Current: next, LastActiveDay: today}
}

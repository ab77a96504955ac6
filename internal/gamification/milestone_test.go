package gamification

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckMilestones_MultipleCrossings(t *testing.T) {
	e := Default()
	got := e.CheckMilestones(decimal.NewFromInt(1200), map[string]time.Time{})
	assert.Equal(t, []int{100, 250, 500, 1000}, got)
}

func TestCheckMilestones_Idempotent(t *testing.T) {
	e := Default()
	unlocked := map[string]time.Time{"100": time.Now()}
	total := decimal.NewFromInt(300)

	first := e.CheckMilestones(total, unlocked)
	second := e.CheckMilestones(total, unlocked)
	assert.Equal(t, []int{250}, first)
	assert.Equal(t, first, second)

	unlocked[MilestoneKey(250)] = time.Now()
	assert.Empty(t, e.CheckMilestones(total, unlocked))
}

func TestCheckMilestones_ExactBoundary(t *testing.T) {
	e := Default()

	// 41.67 * 12 = 500.04, 41.66 * 12 = 499.92
	assert.Contains(t, e.CheckMilestones(Annualize(41.67, "month"), nil), 500)
	assert.NotContains(t, e.CheckMilestones(Annualize(41.66, "month"), nil), 500)
	assert.Equal(t, []int{100}, e.CheckMilestones(decimal.NewFromInt(100), nil))
	assert.Empty(t, e.CheckMilestones(decimal.RequireFromString("99.99"), nil))
}

func TestCheckMilestones_ZeroTimeMarkerCountsAsUnlocked(t *testing.T) {
	e := Default()
	unlocked := map[string]time.Time{"100": {}}
	assert.Equal(t, []int{250}, e.CheckMilestones(decimal.NewFromInt(260), unlocked))
}

func TestNextMilestone(t *testing.T) {
	e := Default()

	next := e.NextMilestone(decimal.NewFromInt(0))
	require.NotNil(t, next)
	assert.Equal(t, 100, next.Amount)
	assert.InDelta(t, 100, next.Remaining, 0.0001)

	next = e.NextMilestone(decimal.RequireFromString("1200.5"))
	require.NotNil(t, next)
	assert.Equal(t, 1500, next.Amount)
	assert.InDelta(t, 299.5, next.Remaining, 0.0001)

	next = e.NextMilestone(decimal.NewFromInt(1000))
	require.NotNil(t, next)
	assert.Equal(t, 1500, next.Amount)

	assert.Nil(t, e.NextMilestone(decimal.NewFromInt(5000)))
}

func TestAnnualize(t *testing.T) {
	assert.True(t, Annualize(10, "month").Equal(decimal.NewFromInt(120)))
	assert.True(t, Annualize(10, "year").Equal(decimal.NewFromInt(10)))
	assert.True(t, Annualize(10, "").Equal(decimal.NewFromInt(10)))
	assert.True(t, Annualize(-10, "month").IsZero())
}

package progress

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moniyo/financequest/internal/dailycap"
	"github.com/moniyo/financequest/internal/database/memory"
	"github.com/moniyo/financequest/internal/domain"
	"github.com/moniyo/financequest/internal/event"
	"github.com/moniyo/financequest/internal/gamification"
	"github.com/moniyo/financequest/internal/quest"
)

func TestInitProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.svc.InitProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Gamification.Level)
	require.NotNil(t, p.Gamification.NextLevelXP)
	assert.Equal(t, int64(300), *p.Gamification.NextLevelXP)

	_, err = f.svc.InitProgress(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrProgressExists)

	_, err = f.svc.InitProgress(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompleteQuest_BeginnerScenario(t *testing.T) {
	f := newFixture(t)
	f.initUser(t, "u1")

	res, err := f.svc.CompleteQuest(context.Background(), "u1", QuestCompletion{QuestID: "intro"})
	require.NoError(t, err)

	assert.Equal(t, 75, res.XPGained)
	assert.Equal(t, int64(75), res.NewXP)
	assert.Equal(t, 1, res.Level)
	assert.False(t, res.LeveledUp)
	assert.False(t, res.XPCapped)
	assert.Equal(t, []string{gamification.BadgeFirstQuest}, res.NewBadges)
	assert.Empty(t, res.NewMilestones)
	assert.Nil(t, res.SavingsEvent)

	assert.Equal(t, []event.Type{event.QuestCompleted, event.XPEarned, event.BadgeUnlocked}, f.publisher.Types())

	stored, err := f.store.GetProgress(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(75), stored.XPTotal)
	assert.Equal(t, []string{gamification.BadgeFirstQuest}, stored.Gamification.Badges)
	assert.True(t, stored.HasCompletedQuest("intro"))
	assert.Equal(t, 1, stored.Streak.Current)
}

func TestCompleteQuest_QuizBonusAndLevelUp(t *testing.T) {
	f := newFixture(t, withoutLimiter)
	f.initUser(t, "u1")

	res, err := f.svc.CompleteQuest(context.Background(), "u1", QuestCompletion{QuestID: "big-quiz", Score: intPtr(80)})
	require.NoError(t, err)

	assert.Equal(t, 310, res.XPGained)
	assert.Equal(t, 2, res.Level)
	assert.Equal(t, 1, res.PreviousLevel)
	assert.True(t, res.LeveledUp)

	levelUps := f.publisher.OfType(event.LevelUp)
	require.Len(t, levelUps, 1)
	payload := levelUps[0].Payload.(event.LevelUpPayloadV1)
	assert.Equal(t, 2, payload.Level)
	assert.Equal(t, int64(310), payload.XPTotal)
}

func TestCompleteQuest_DailyXPCap(t *testing.T) {
	f := newFixture(t)
	f.initUser(t, "u1")
	ctx := context.Background()

	res, err := f.svc.CompleteQuest(ctx, "u1", QuestCompletion{QuestID: "big-quiz", Score: intPtr(95)})
	require.NoError(t, err)
	assert.Equal(t, gamification.DailyXPCap, res.XPGained)
	assert.True(t, res.XPCapped)
	assert.Equal(t, 1, res.Level)

	xp := f.publisher.OfType(event.XPEarned)[0].Payload.(event.XPEarnedPayloadV1)
	assert.Equal(t, 250, xp.Amount)
	assert.Equal(t, 310, xp.Requested)

	// Cap exhausted for the rest of the day
	res, err = f.svc.CompleteQuest(ctx, "u1", QuestCompletion{QuestID: "intro"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.XPGained)
	assert.True(t, res.XPCapped)
	assert.Empty(t, res.NewBadges)
	stored, err := f.store.GetProgress(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, stored.HasCompletedQuest("intro"), "completion is recorded at the cap")

	// Next calendar day resets the budget
	f.clock.Advance(24 * time.Hour)
	res, err = f.svc.CompleteQuest(ctx, "u1", QuestCompletion{QuestID: "track"})
	require.NoError(t, err)
	assert.Equal(t, 75, res.XPGained)
	assert.Equal(t, int64(325), res.NewXP)
	assert.True(t, res.LeveledUp)
}

func TestCompleteQuest_LedgerFailureFailsOpen(t *testing.T) {
	f := newFixture(t, withLedger(brokenLedger{}))
	f.initUser(t, "u1")

	res, err := f.svc.CompleteQuest(context.Background(), "u1", QuestCompletion{QuestID: "big-quiz", Score: intPtr(90)})
	require.NoError(t, err)
	assert.Equal(t, 310, res.XPGained)
	assert.False(t, res.XPCapped)
}

func TestCompleteQuest_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CompleteQuest(ctx, "ghost", QuestCompletion{QuestID: "intro"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	f.initUser(t, "u1")
	_, err = f.svc.CompleteQuest(ctx, "u1", QuestCompletion{QuestID: "nope"})
	assert.ErrorIs(t, err, domain.ErrQuestNotFound)

	_, err = f.svc.CompleteQuest(ctx, "u1", QuestCompletion{QuestID: "intro", Score: intPtr(101)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.CompleteQuest(ctx, "u1", QuestCompletion{QuestID: "intro"})
	require.NoError(t, err)
	f.publisher.Reset()

	_, err = f.svc.CompleteQuest(ctx, "u1", QuestCompletion{QuestID: "intro"})
	assert.ErrorIs(t, err, domain.ErrQuestAlreadyCompleted)
	assert.Empty(t, f.publisher.Calls)

	stored, _ := f.store.GetProgress(ctx, "u1")
	assert.Equal(t, int64(75), stored.XPTotal)
}

func TestCompleteQuest_MissingUserWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CompleteQuest(ctx, "ghost", QuestCompletion{QuestID: "cut-subscription"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	events, err := f.store.ListSavingsEvents(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Empty(t, f.publisher.Calls)
}

func TestCompleteQuest_WithImpact(t *testing.T) {
	f := newFixture(t)
	f.initUser(t, "u1")

	res, err := f.svc.CompleteQuest(context.Background(), "u1", QuestCompletion{QuestID: gamification.QuestIDCutSubscription})
	require.NoError(t, err)

	assert.Equal(t, 75+gamification.SavingsQuestBonusXP, res.XPGained)
	assert.Equal(t, int64(95), res.NewXP)
	assert.Equal(t, []string{gamification.BadgeFirstQuest, gamification.BadgeQuickWinDone}, res.NewBadges)
	assert.Equal(t, []int{100}, res.NewMilestones)

	require.NotNil(t, res.SavingsEvent)
	assert.Equal(t, domain.SavingsSourceQuest, res.SavingsEvent.Source)
	assert.Equal(t, gamification.QuestIDCutSubscription, res.SavingsEvent.QuestID)
	assert.Equal(t, gamification.SavingsQuestBonusXP, res.SavingsEvent.XPAwarded)

	assert.Equal(t, []event.Type{
		event.QuestCompleted, event.XPEarned, event.BadgeUnlocked,
		event.SavingsChanged, event.XPEarned, event.MilestoneUnlocked, event.BadgeUnlocked,
	}, f.publisher.Types())

	milestone := f.publisher.OfType(event.MilestoneUnlocked)[0].Payload.(event.MilestoneUnlockedPayloadV1)
	assert.Equal(t, 100, milestone.Amount)
	assert.Equal(t, 144.0, milestone.ImpactTotal)

	stored, _ := f.store.GetProgress(context.Background(), "u1")
	assert.True(t, f.clock.Now().Equal(stored.Gamification.Milestones["100"]))
}

func TestCompleteQuest_TaxOptimizer(t *testing.T) {
	f := newFixture(t)
	f.initUser(t, "u1")

	res, err := f.svc.CompleteQuest(context.Background(), "u1", QuestCompletion{QuestID: gamification.QuestIDAdjustTaxRate})
	require.NoError(t, err)

	assert.Equal(t, 180+gamification.SavingsQuestBonusXP, res.XPGained)
	assert.Contains(t, res.NewBadges, gamification.BadgeTaxOptimizer)
	assert.Equal(t, []int{100}, res.NewMilestones)
}

func TestCompleteQuest_StarterPackFinisher(t *testing.T) {
	f := newFixture(t, withoutLimiter)
	f.initUser(t, "u1")
	ctx := context.Background()

	for _, id := range []string{"intro", "track"} {
		res, err := f.svc.CompleteQuest(ctx, "u1", QuestCompletion{QuestID: id})
		require.NoError(t, err)
		assert.NotContains(t, res.NewBadges, gamification.BadgeStarterPackFinisher)
	}

	res, err := f.svc.CompleteQuest(ctx, "u1", QuestCompletion{QuestID: "fund"})
	require.NoError(t, err)
	assert.Equal(t, 90, res.XPGained, "xpReward is used when xp is absent")
	assert.Equal(t, []string{gamification.BadgeStarterPackFinisher}, res.NewBadges)
}

func TestCompleteQuest_ConcurrentCompletions(t *testing.T) {
	quests := make([]domain.Quest, 20)
	for i := range quests {
		quests[i] = domain.Quest{ID: fmt.Sprintf("q%d", i), Title: "Q", XP: 10}
	}
	catalog, err := quest.NewCatalog(domain.QuestCatalogConfig{Quests: quests})
	require.NoError(t, err)

	store := memory.NewStore()
	svc := NewService(store, catalog, nil, newMockPublisher())
	ctx := context.Background()
	_, err = svc.InitProgress(ctx, "u1")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, q := range quests {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := svc.CompleteQuest(ctx, "u1", QuestCompletion{QuestID: id})
			assert.NoError(t, err)
		}(q.ID)
	}
	wg.Wait()

	stored, err := store.GetProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(200), stored.XPTotal, "no award is lost between concurrent writers")
	assert.Len(t, stored.CompletedQuests, 20)
}

func TestCompleteQuest_UpdateFailurePropagates(t *testing.T) {
	store := &failingUpdateStore{Store: memory.NewStore(), err: errors.New("disk full")}
	f := newFixture(t, withStore(store))
	f.initUser(t, "u1")

	_, err := f.svc.CompleteQuest(context.Background(), "u1", QuestCompletion{QuestID: "intro"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrContextUpdateProgress)
	assert.Empty(t, f.publisher.Calls)
}

func TestCompleteQuest_UpdateFailureRefundsXP(t *testing.T) {
	store := &failingUpdateStore{Store: memory.NewStore(), err: errors.New("disk full")}
	f := newFixture(t, withStore(store))
	f.initUser(t, "u1")

	_, err := f.svc.CompleteQuest(context.Background(), "u1", QuestCompletion{QuestID: "big-quiz", Score: intPtr(95)})
	require.Error(t, err)

	usage := f.usage(t, "u1")
	assert.Equal(t, 0, usage.XPEarned)
	assert.Equal(t, gamification.DailyXPCap, usage.XPRemaining)
}

func TestCompleteQuest_ImpactFailureKeepsCompletion(t *testing.T) {
	store := &failingSavingsStore{Store: memory.NewStore(), err: errors.New("disk gone")}
	f := newFixture(t, withStore(store))
	f.initUser(t, "u1")
	ctx := context.Background()
	questID := gamification.QuestIDCutSubscription

	res, err := f.svc.CompleteQuest(ctx, "u1", QuestCompletion{QuestID: questID})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Nil(t, res.SavingsEvent)
	assert.True(t, res.ImpactPending)
	assert.Equal(t, 75, res.XPGained)
	assert.Equal(t, int64(75), res.NewXP)
	assert.Equal(t, []string{gamification.BadgeFirstQuest}, res.NewBadges)
	assert.Equal(t, []event.Type{event.QuestCompleted, event.XPEarned, event.BadgeUnlocked}, f.publisher.Types())

	stored, err := store.GetProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(75), stored.XPTotal)
	assert.True(t, stored.HasCompletedQuest(questID))
	assert.True(t, stored.ImpactPending(questID))

	usage := f.usage(t, "u1")
	assert.Equal(t, 75, usage.XPEarned, "impact XP is handed back")
	assert.Equal(t, 0, usage.ImpactEvents, "impact slot is handed back")

	// Completing again records only the impact
	store.heal()
	f.publisher.Reset()
	res, err = f.svc.CompleteQuest(ctx, "u1", QuestCompletion{QuestID: questID})
	require.NoError(t, err)
	require.NotNil(t, res.SavingsEvent)
	assert.False(t, res.ImpactPending)
	assert.Equal(t, questID, res.SavingsEvent.QuestID)
	assert.Equal(t, gamification.SavingsQuestBonusXP, res.XPGained)
	assert.Equal(t, int64(95), res.NewXP)
	assert.Equal(t, []string{gamification.BadgeQuickWinDone}, res.NewBadges)
	assert.Equal(t, []int{100}, res.NewMilestones)
	assert.NotContains(t, f.publisher.Types(), event.QuestCompleted)

	stored, err = store.GetProgress(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, stored.ImpactPending(questID))
	assert.Len(t, stored.CompletedQuests, 1)

	_, err = f.svc.CompleteQuest(ctx, "u1", QuestCompletion{QuestID: questID})
	assert.ErrorIs(t, err, domain.ErrQuestAlreadyCompleted)
}

func TestCompleteQuest_ImpactRecordedClearsPending(t *testing.T) {
	f := newFixture(t)
	f.initUser(t, "u1")
	ctx := context.Background()

	_, err := f.svc.CompleteQuest(ctx, "u1", QuestCompletion{QuestID: gamification.QuestIDCutSubscription})
	require.NoError(t, err)

	stored, err := f.store.GetProgress(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, stored.CompletedQuests, 1)
	assert.False(t, stored.CompletedQuests[0].ImpactPending)

	used, err := f.ledger.Used(ctx, dailycap.Bucket{Kind: dailycap.CounterImpact, UserID: "u1", Day: "2026-04-06"})
	require.NoError(t, err)
	assert.Equal(t, 1, used)
}

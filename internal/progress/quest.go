package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/moniyo/financequest/internal/domain"
	"github.com/moniyo/financequest/internal/event"
	"github.com/moniyo/financequest/internal/gamification"
	"github.com/moniyo/financequest/internal/logger"
)

// CompleteQuest awards quest XP under the daily cap, records the completion,
// re-evaluates level and badges in one transactional update and, when the
// quest carries an impact, records the matching quest-sourced saving.
// A failed impact record leaves the completion committed with the impact
// pending; completing the quest again retries only the impact.
func (s *service) CompleteQuest(ctx context.Context, userID string, req QuestCompletion) (*domain.QuestCompletionResult, error) {
	log := logger.FromContext(ctx)

	if req.Score != nil && (*req.Score < 0 || *req.Score > 100) {
		return nil, fmt.Errorf("%w: score must be between 0 and 100", domain.ErrInvalidInput)
	}

	quest, err := s.catalog.Get(req.QuestID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextGetQuest, err)
	}

	unlock := s.userLocks.Lock(userID)
	defer unlock()

	current, err := s.store.GetProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextGetProgress, err)
	}
	if current.HasCompletedQuest(quest.ID) {
		if hasImpact(quest) && current.ImpactPending(quest.ID) {
			return s.retryQuestImpact(ctx, userID, quest, current)
		}
		return nil, domain.ErrQuestAlreadyCompleted
	}

	events, err := s.store.ListSavingsEvents(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListSavings, err)
	}

	now := s.now().UTC()
	requested := s.engine.QuestXP(gamification.QuestXPInputFrom(quest), req.Score)
	var held budget
	granted := s.clampXP(ctx, userID, now, requested, &held)

	var (
		previousLevel int
		level         gamification.LevelData
		newBadges     []string
	)
	updated, err := s.store.UpdateProgress(ctx, userID, func(p *domain.UserProgress) error {
		if p.HasCompletedQuest(quest.ID) {
			return domain.ErrQuestAlreadyCompleted
		}

		previousLevel = s.engine.Level(p.XPTotal)
		p.XPTotal += int64(granted)
		p.CompletedQuests = append(p.CompletedQuests, domain.CompletedQuest{
			QuestID:       quest.ID,
			Category:      quest.Category,
			StarterPack:   quest.StarterPack,
			XP:            granted,
			Score:         req.Score,
			CompletedAt:   now,
			ImpactPending: hasImpact(quest),
		})
		p.Streak = touchStreak(p.Streak, s.day(now))
		level = s.applyLevel(p)

		newBadges = s.engine.CheckBadges(s.engine.NewBadgeContext(p, events), p.Gamification.Badges)
		p.Gamification.Badges = gamification.MergeBadges(p.Gamification.Badges, newBadges)
		p.Gamification.UpdatedAt = now
		return nil
	})
	if err != nil {
		s.refund(ctx, userID, now, held)
		if errors.Is(err, domain.ErrQuestAlreadyCompleted) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrContextUpdateProgress, err)
	}
	s.invalidate(userID)

	result := &domain.QuestCompletionResult{
		QuestID:       quest.ID,
		XPGained:      granted,
		XPCapped:      granted < requested,
		NewXP:         updated.XPTotal,
		PreviousLevel: previousLevel,
		Level:         level.Level,
		LeveledUp:     level.Level > previousLevel,
		NewBadges:     nonNilStrings(newBadges),
		NewMilestones: []int{},
	}

	s.publish(ctx, event.NewQuestCompletedEvent(userID, quest.ID, quest.Category, req.Score))
	s.publish(ctx, event.NewXPEarnedEvent(userID, domain.XPSourceQuest, granted, requested, quest.ID, updated.XPTotal))
	if result.LeveledUp {
		s.publish(ctx, event.NewLevelUpEvent(userID, previousLevel, level.Level, updated.XPTotal))
	}
	for _, id := range newBadges {
		s.publish(ctx, event.NewBadgeUnlockedEvent(userID, id))
	}

	log.Info(LogMsgQuestCompleted,
		logger.AttrKeyUserID, userID, "quest_id", quest.ID, "xp", granted, "level", level.Level, "new_badges", len(newBadges))

	if !hasImpact(quest) {
		return result, nil
	}

	savings, err := s.recordQuestImpact(ctx, userID, quest)
	if err != nil {
		log.Warn(LogMsgQuestImpactPending, logger.AttrKeyUserID, userID, "quest_id", quest.ID, "error", err)
		result.ImpactPending = true
		return result, nil
	}

	result.SavingsEvent = savings.Event
	result.XPGained += savings.XPGained
	result.NewXP = savings.NewXP
	result.Level = savings.Level
	result.LeveledUp = savings.Level > previousLevel
	result.NewBadges = gamification.MergeBadges(result.NewBadges, savings.NewBadges)
	result.NewMilestones = savings.NewMilestones
	return result, nil
}

// retryQuestImpact records the impact of a completed quest whose first
// impact record failed. Only the impact XP is awarded.
func (s *service) retryQuestImpact(ctx context.Context, userID string, quest domain.Quest, current *domain.UserProgress) (*domain.QuestCompletionResult, error) {
	previousLevel := s.engine.Level(current.XPTotal)
	savings, err := s.recordQuestImpact(ctx, userID, quest)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextQuestImpact, err)
	}

	logger.FromContext(ctx).Info(LogMsgQuestImpactRecorded,
		logger.AttrKeyUserID, userID, "quest_id", quest.ID, "xp", savings.XPGained)

	return &domain.QuestCompletionResult{
		QuestID:       quest.ID,
		XPGained:      savings.XPGained,
		NewXP:         savings.NewXP,
		PreviousLevel: previousLevel,
		Level:         savings.Level,
		LeveledUp:     savings.Level > previousLevel,
		NewBadges:     savings.NewBadges,
		NewMilestones: savings.NewMilestones,
		SavingsEvent:  savings.Event,
	}, nil
}

func (s *service) recordQuestImpact(ctx context.Context, userID string, quest domain.Quest) (*domain.SavingsChangeResult, error) {
	return s.recordSavings(ctx, userID, SavingsInput{
		Amount:   quest.Impact.Amount,
		Period:   quest.Impact.Period,
		Source:   domain.SavingsSourceQuest,
		QuestID:  quest.ID,
		Category: quest.Category,
		Title:    quest.Title,
	})
}

func hasImpact(q domain.Quest) bool {
	return q.Impact != nil && q.Impact.Amount > 0
}

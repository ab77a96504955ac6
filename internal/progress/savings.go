package progress

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moniyo/financequest/internal/domain"
	"github.com/moniyo/financequest/internal/event"
	"github.com/moniyo/financequest/internal/gamification"
	"github.com/moniyo/financequest/internal/logger"
)

var validSources = map[string]bool{
	domain.SavingsSourceManual:   true,
	domain.SavingsSourceQuest:    true,
	domain.SavingsSourceQuickWin: true,
}

func (in *SavingsInput) normalize() error {
	if in.Source == "" {
		in.Source = domain.SavingsSourceManual
	}
	if !validSources[in.Source] {
		return fmt.Errorf("%w: unknown savings source %q", domain.ErrInvalidInput, in.Source)
	}
	if in.Period != domain.PeriodMonth && in.Period != domain.PeriodYear {
		return fmt.Errorf("%w: period must be month or year", domain.ErrInvalidInput)
	}
	if in.Amount < 0 || math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
		return fmt.Errorf("%w: amount must be a non-negative number", domain.ErrInvalidInput)
	}
	return nil
}

// RecordSavings stores a new savings event, awards its XP under the daily
// limits and re-evaluates milestones and badges
func (s *service) RecordSavings(ctx context.Context, userID string, in SavingsInput) (*domain.SavingsChangeResult, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	unlock := s.userLocks.Lock(userID)
	defer unlock()

	if _, err := s.store.GetProgress(ctx, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextGetProgress, err)
	}
	return s.recordSavings(ctx, userID, in)
}

func (s *service) recordSavings(ctx context.Context, userID string, in SavingsInput) (*domain.SavingsChangeResult, error) {
	log := logger.FromContext(ctx)
	now := s.now().UTC()

	ev := domain.SavingsEvent{
		ID:        uuid.NewString(),
		UserID:    userID,
		Amount:    in.Amount,
		Period:    in.Period,
		Source:    in.Source,
		Verified:  in.Verified,
		QuestID:   in.QuestID,
		Category:  in.Category,
		Title:     in.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var held budget
	requested := s.engine.SavingsXP(gamification.SavingsXPInputFrom(ev), in.Source)
	granted := 0
	if requested > 0 && s.allowImpactEvent(ctx, userID, now, &held) {
		granted = s.clampXP(ctx, userID, now, requested, &held)
	}
	ev.XPAwarded = granted

	if err := s.store.AddSavingsEvent(ctx, &ev); err != nil {
		s.refund(ctx, userID, now, held)
		return nil, fmt.Errorf("%s: %w", ErrContextAddSavings, err)
	}

	result, err := s.applySavingsChange(ctx, userID, domain.SavingsChangeCreated, ev, granted, requested, true, now)
	if err != nil {
		s.refund(ctx, userID, now, held)
		log.Warn(LogMsgCompensatingDelete, logger.AttrKeyUserID, userID, "event_id", ev.ID)
		if delErr := s.store.DeleteSavingsEvent(ctx, userID, ev.ID); delErr != nil {
			log.Error(LogMsgCompensatingDeleteFail, logger.AttrKeyUserID, userID, "event_id", ev.ID, "error", delErr)
		}
		return nil, err
	}
	return result, nil
}

// UpdateSavings edits an existing savings event. XP awarded at creation is
// kept; milestones and badges are re-evaluated against the new totals.
func (s *service) UpdateSavings(ctx context.Context, userID, eventID string, in SavingsInput) (*domain.SavingsChangeResult, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	unlock := s.userLocks.Lock(userID)
	defer unlock()

	existing, err := s.store.GetSavingsEvent(ctx, userID, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextGetSavings, err)
	}

	now := s.now().UTC()
	ev := *existing
	ev.Amount = in.Amount
	ev.Period = in.Period
	ev.Source = in.Source
	ev.Verified = in.Verified
	ev.QuestID = in.QuestID
	ev.Category = in.Category
	ev.Title = in.Title
	ev.UpdatedAt = now

	if err := s.store.UpdateSavingsEvent(ctx, &ev); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextUpdateSavings, err)
	}
	return s.applySavingsChange(ctx, userID, domain.SavingsChangeUpdated, ev, 0, 0, false, now)
}

// DeleteSavings removes a savings event. Awarded XP, milestones and badges
// stay unlocked.
func (s *service) DeleteSavings(ctx context.Context, userID, eventID string) (*domain.SavingsChangeResult, error) {
	unlock := s.userLocks.Lock(userID)
	defer unlock()

	existing, err := s.store.GetSavingsEvent(ctx, userID, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextGetSavings, err)
	}
	if err := s.store.DeleteSavingsEvent(ctx, userID, eventID); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextDeleteSavings, err)
	}
	return s.applySavingsChange(ctx, userID, domain.SavingsChangeDeleted, *existing, 0, 0, false, s.now().UTC())
}

// applySavingsChange re-aggregates the user's savings, adds any awarded XP
// and merge-writes new milestones and badges in one transactional update
func (s *service) applySavingsChange(
	ctx context.Context,
	userID, change string,
	ev domain.SavingsEvent,
	granted, requested int,
	active bool,
	now time.Time,
) (*domain.SavingsChangeResult, error) {
	events, err := s.store.ListSavingsEvents(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListSavings, err)
	}
	summary := gamification.AggregateSavings(events)

	var (
		previousLevel int
		level         gamification.LevelData
		newMilestones []int
		newBadges     []string
	)
	updated, err := s.store.UpdateProgress(ctx, userID, func(p *domain.UserProgress) error {
		previousLevel = s.engine.Level(p.XPTotal)
		p.XPTotal += int64(granted)
		if active {
			p.Streak = touchStreak(p.Streak, s.day(now))
		}
		if change == domain.SavingsChangeCreated && ev.Source == domain.SavingsSourceQuest && ev.QuestID != "" {
			p.ClearImpactPending(ev.QuestID)
		}
		level = s.applyLevel(p)

		if p.Gamification.Milestones == nil {
			p.Gamification.Milestones = map[string]time.Time{}
		}
		newMilestones = s.engine.CheckMilestones(summary.TotalAnnualImpact, p.Gamification.Milestones)
		for _, m := range newMilestones {
			p.Gamification.Milestones[gamification.MilestoneKey(m)] = now
		}

		newBadges = s.engine.CheckBadges(s.engine.NewBadgeContext(p, events), p.Gamification.Badges)
		p.Gamification.Badges = gamification.MergeBadges(p.Gamification.Badges, newBadges)
		p.Gamification.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextUpdateProgress, err)
	}
	s.invalidate(userID)

	impact := impactTotal(summary.TotalAnnualImpact)
	stored := ev
	result := &domain.SavingsChangeResult{
		Change:            change,
		Event:             &stored,
		XPGained:          granted,
		NewXP:             updated.XPTotal,
		Level:             level.Level,
		LeveledUp:         level.Level > previousLevel,
		NewMilestones:     nonNilInts(newMilestones),
		NewBadges:         nonNilStrings(newBadges),
		TotalAnnualImpact: impact,
	}
	if change == domain.SavingsChangeDeleted {
		result.Event = nil
	}

	s.publish(ctx, event.NewSavingsChangedEvent(userID, change, ev))
	if granted > 0 {
		s.publish(ctx, event.NewXPEarnedEvent(userID, domain.XPSourceSavings, granted, requested, ev.QuestID, updated.XPTotal))
	}
	if result.LeveledUp {
		s.publish(ctx, event.NewLevelUpEvent(userID, previousLevel, level.Level, updated.XPTotal))
	}
	for _, m := range newMilestones {
		s.publish(ctx, event.NewMilestoneUnlockedEvent(userID, m, impact))
	}
	for _, id := range newBadges {
		s.publish(ctx, event.NewBadgeUnlockedEvent(userID, id))
	}

	logger.FromContext(ctx).Info(LogMsgSavingsChanged,
		logger.AttrKeyUserID, userID, "change", change, "xp", granted,
		"impact_total", impact, "new_milestones", len(newMilestones), "new_badges", len(newBadges))
	return result, nil
}

// impactTotal is the rounded annual impact used in views
func impactTotal(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

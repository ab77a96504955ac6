package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/moniyo/financequest/internal/dailycap"
	"github.com/moniyo/financequest/internal/domain"
	"github.com/moniyo/financequest/internal/gamification"
	"github.com/moniyo/financequest/internal/logger"
)

// ProgressView is the rendered progression state of a user
type ProgressView struct {
	UserID            string                      `json:"user_id"`
	XPTotal           int64                       `json:"xp_total"`
	Level             gamification.LevelData      `json:"level"`
	Badges            []gamification.BadgeView    `json:"badges"`
	Milestones        map[string]time.Time        `json:"milestones"`
	NextMilestone     *gamification.NextMilestone `json:"next_milestone"`
	TotalAnnualImpact float64                     `json:"total_annual_impact"`
	SavingsEvents     int                         `json:"savings_events"`
	QuickWins         int                         `json:"quick_wins"`
	CompletedQuests   []domain.CompletedQuest     `json:"completed_quests"`
	Streak            domain.Streak               `json:"streak"`
	DailyUsage        *dailycap.Usage             `json:"daily_usage,omitempty"`
	UpdatedAt         time.Time                   `json:"updated_at"`
}

// GetProgress returns the progress view of a user in the requested language
func (s *service) GetProgress(ctx context.Context, userID, lang string) (*ProgressView, error) {
	snap, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := snap.Progress
	summary := gamification.AggregateSavings(snap.Events)

	view := &ProgressView{
		UserID:            p.UserID,
		XPTotal:           p.XPTotal,
		Level:             s.engine.ComputeLevel(p.XPTotal),
		Badges:            s.engine.BadgeViews(p.Gamification.Badges, lang),
		Milestones:        p.Gamification.Milestones,
		NextMilestone:     s.engine.NextMilestone(summary.TotalAnnualImpact),
		TotalAnnualImpact: impactTotal(summary.TotalAnnualImpact),
		SavingsEvents:     summary.Events,
		QuickWins:         summary.QuickWins,
		CompletedQuests:   p.CompletedQuests,
		Streak:            p.Streak,
		UpdatedAt:         p.Gamification.UpdatedAt,
	}

	if s.limiter != nil {
		usage, err := s.limiter.Usage(ctx, userID, s.now())
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgUsageUnavailable, logger.AttrKeyUserID, userID, "error", err)
		} else {
			view.DailyUsage = &usage
		}
	}
	return view, nil
}

func (s *service) loadSnapshot(ctx context.Context, userID string) (*snapshot, error) {
	var gen uint64
	if s.cache != nil {
		if snap, ok := s.cache.Get(userID); ok {
			return &snapshot{Progress: snap.Progress.Clone(), Events: snap.Events}, nil
		}
		gen = s.cache.Generation(userID)
	}

	p, err := s.store.GetProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextGetProgress, err)
	}
	events, err := s.store.ListSavingsEvents(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListSavings, err)
	}

	if s.cache != nil {
		s.cache.Set(userID, gen, p, events)
	}
	return &snapshot{Progress: p, Events: events}, nil
}

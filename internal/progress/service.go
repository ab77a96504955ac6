// Package progress orchestrates progression changes: it reads the user
// document, runs the engine, writes the result transactionally and
// publishes the resulting events.
package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/moniyo/financequest/internal/concurrency"
	"github.com/moniyo/financequest/internal/dailycap"
	"github.com/moniyo/financequest/internal/domain"
	"github.com/moniyo/financequest/internal/event"
	"github.com/moniyo/financequest/internal/gamification"
	"github.com/moniyo/financequest/internal/logger"
	"github.com/moniyo/financequest/internal/repository"
)

// QuestCatalog resolves quest ids
type QuestCatalog interface {
	Get(id string) (domain.Quest, error)
}

// QuestCompletion is a request to complete a quest
type QuestCompletion struct {
	QuestID string
	Score   *int
}

// SavingsInput describes a savings event to create or update
type SavingsInput struct {
	Amount   float64
	Period   string
	Source   string
	Verified bool
	QuestID  string
	Category string
	Title    string
}

// Service defines the progression operations
type Service interface {
	// InitProgress creates the default document for a new account
	InitProgress(ctx context.Context, userID string) (*domain.UserProgress, error)

	// GetProgress returns the rendered progression state of a user
	GetProgress(ctx context.Context, userID, lang string) (*ProgressView, error)

	// CompleteQuest awards a quest and records its impact
	CompleteQuest(ctx context.Context, userID string, req QuestCompletion) (*domain.QuestCompletionResult, error)

	// Savings events
	RecordSavings(ctx context.Context, userID string, in SavingsInput) (*domain.SavingsChangeResult, error)
	UpdateSavings(ctx context.Context, userID, eventID string, in SavingsInput) (*domain.SavingsChangeResult, error)
	DeleteSavings(ctx context.Context, userID, eventID string) (*domain.SavingsChangeResult, error)
	ListSavings(ctx context.Context, userID string) ([]domain.SavingsEvent, error)
}

type service struct {
	store     repository.Store
	catalog   QuestCatalog
	engine    *gamification.Engine
	limiter   *dailycap.Limiter
	publisher event.Publisher
	cache     *snapshotCache
	userLocks *concurrency.KeyedMutex
	now       func() time.Time
}

// Option configures the service
type Option func(*service)

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// WithCache sets the size and TTL of the progress view cache
func WithCache(size int, ttl time.Duration) Option {
	return func(s *service) {
		if size > 0 && ttl > 0 {
			s.cache = newSnapshotCache(size, ttl)
		}
	}
}

// WithEngine replaces the production rule tables
func WithEngine(e *gamification.Engine) Option {
	return func(s *service) {
		if e != nil {
			s.engine = e
		}
	}
}

// NewService creates a new progression service
func NewService(
	store repository.Store,
	catalog QuestCatalog,
	limiter *dailycap.Limiter,
	publisher event.Publisher,
	opts ...Option,
) Service {
	s := &service{
		store:     store,
		catalog:   catalog,
		engine:    gamification.Default(),
		limiter:   limiter,
		publisher: publisher,
		cache:     newSnapshotCache(DefaultCacheSize, DefaultCacheTTL),
		userLocks: concurrency.NewKeyedMutex(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InitProgress creates the default progress document
func (s *service) InitProgress(ctx context.Context, userID string) (*domain.UserProgress, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	p := domain.NewUserProgress(userID, s.now().UTC())
	ld := s.engine.ComputeLevel(0)
	p.Gamification.Level = ld.Level
	p.Gamification.NextLevelXP = ld.NextLevelXP

	if err := s.store.CreateProgress(ctx, p); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextCreateProgress, err)
	}

	logger.FromContext(ctx).Info(LogMsgProgressInitialized, logger.AttrKeyUserID, userID)
	return p, nil
}

// ListSavings returns the user's savings events, oldest first
func (s *service) ListSavings(ctx context.Context, userID string) ([]domain.SavingsEvent, error) {
	if _, err := s.store.GetProgress(ctx, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextGetProgress, err)
	}
	events, err := s.store.ListSavingsEvents(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListSavings, err)
	}
	return events, nil
}

// day is the calendar day used for streaks and caps
func (s *service) day(at time.Time) string {
	if s.limiter != nil {
		return s.limiter.Day(at)
	}
	return at.UTC().Format(domain.DayLayout)
}

// budget is what one write took from the daily ledger
type budget struct {
	xp     int
	impact bool
}

// clampXP applies the daily XP cap. Ledger failures award the full amount
// without holding any of it.
func (s *service) clampXP(ctx context.Context, userID string, at time.Time, xp int, held *budget) int {
	if s.limiter == nil || xp <= 0 {
		return xp
	}
	granted, err := s.limiter.ClampXP(ctx, userID, at, xp)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgCapLedgerUnavailable, logger.AttrKeyUserID, userID, "error", err)
		return xp
	}
	if granted < xp {
		logger.FromContext(ctx).Info(LogMsgXPCapped, logger.AttrKeyUserID, userID, "requested", xp, "granted", granted)
	}
	held.xp = granted
	return granted
}

// allowImpactEvent applies the daily limit on XP-bearing savings events
func (s *service) allowImpactEvent(ctx context.Context, userID string, at time.Time, held *budget) bool {
	if s.limiter == nil {
		return true
	}
	ok, err := s.limiter.AllowImpactEvent(ctx, userID, at)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgCapLedgerUnavailable, logger.AttrKeyUserID, userID, "error", err)
		return true
	}
	if !ok {
		logger.FromContext(ctx).Info(LogMsgImpactLimitReached, logger.AttrKeyUserID, userID)
	}
	held.impact = ok
	return ok
}

// refund hands a held budget back after the write it was taken for failed
func (s *service) refund(ctx context.Context, userID string, at time.Time, held budget) {
	if s.limiter == nil {
		return
	}
	log := logger.FromContext(ctx)
	if held.xp > 0 {
		if err := s.limiter.RefundXP(ctx, userID, at, held.xp); err != nil {
			log.Warn(LogMsgRefundFailed, logger.AttrKeyUserID, userID, "xp", held.xp, "error", err)
		}
	}
	if held.impact {
		if err := s.limiter.RefundImpactEvent(ctx, userID, at); err != nil {
			log.Warn(LogMsgRefundFailed, logger.AttrKeyUserID, userID, "impact_event", true, "error", err)
		}
	}
}

// applyLevel refreshes the derived level fields after an XP change
func (s *service) applyLevel(p *domain.UserProgress) gamification.LevelData {
	ld := s.engine.ComputeLevel(p.XPTotal)
	p.Gamification.Level = ld.Level
	p.Gamification.NextLevelXP = ld.NextLevelXP
	return ld
}

func (s *service) publish(ctx context.Context, events ...event.Event) {
	if s.publisher == nil {
		return
	}
	for _, evt := range events {
		s.publisher.PublishWithRetry(ctx, evt)
	}
}

func (s *service) invalidate(userID string) {
	if s.cache != nil {
		s.cache.Invalidate(userID)
	}
}

func nonNilInts(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

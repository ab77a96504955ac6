package dailycap

import (
	"context"
	"time"

	"github.com/moniyo/financequest/internal/domain"
	"github.com/moniyo/financequest/internal/gamification"
)

// Limiter enforces the per-day XP cap and the per-day limit of XP-bearing
// savings events. Days are calendar days in the configured location.
type Limiter struct {
	ledger         Ledger
	loc            *time.Location
	xpCap          int
	impactEventCap int
}

// Option configures a Limiter
type Option func(*Limiter)

// WithLocation sets the time zone days are bucketed in
func WithLocation(loc *time.Location) Option {
	return func(l *Limiter) {
		if loc != nil {
			l.loc = loc
		}
	}
}

// WithCaps overrides the default ceilings
func WithCaps(xpCap, impactEventCap int) Option {
	return func(l *Limiter) {
		l.xpCap = xpCap
		l.impactEventCap = impactEventCap
	}
}

// NewLimiter creates a limiter backed by ledger
func NewLimiter(ledger Ledger, opts ...Option) *Limiter {
	l := &Limiter{
		ledger:         ledger,
		loc:            time.UTC,
		xpCap:          gamification.DailyXPCap,
		impactEventCap: gamification.MaxImpactEventsPerDay,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Day returns the bucket day for a timestamp
func (l *Limiter) Day(at time.Time) string {
	return at.In(l.loc).Format(domain.DayLayout)
}

// Location returns the time zone days are bucketed in
func (l *Limiter) Location() *time.Location {
	return l.loc
}

// ClampXP grants at most the XP left under today's cap.
// If the ledger fails the full amount is returned along with the error.
func (l *Limiter) ClampXP(ctx context.Context, userID string, at time.Time, xp int) (int, error) {
	if xp <= 0 {
		return 0, nil
	}
	granted, err := l.ledger.Reserve(ctx, Bucket{Kind: CounterXP, UserID: userID, Day: l.Day(at)}, xp, l.xpCap)
	if err != nil {
		return xp, err
	}
	return granted, nil
}

// AllowImpactEvent reports whether another savings event may earn XP today.
// If the ledger fails the event is allowed along with the error.
func (l *Limiter) AllowImpactEvent(ctx context.Context, userID string, at time.Time) (bool, error) {
	granted, err := l.ledger.Reserve(ctx, Bucket{Kind: CounterImpact, UserID: userID, Day: l.Day(at)}, 1, l.impactEventCap)
	if err != nil {
		return true, err
	}
	return granted == 1, nil
}

// RefundXP hands back XP granted by ClampXP for the day of at
func (l *Limiter) RefundXP(ctx context.Context, userID string, at time.Time, xp int) error {
	return l.ledger.Release(ctx, Bucket{Kind: CounterXP, UserID: userID, Day: l.Day(at)}, xp)
}

// RefundImpactEvent hands back an event slot taken by AllowImpactEvent
func (l *Limiter) RefundImpactEvent(ctx context.Context, userID string, at time.Time) error {
	return l.ledger.Release(ctx, Bucket{Kind: CounterImpact, UserID: userID, Day: l.Day(at)}, 1)
}

// Usage is today's consumption for a user
type Usage struct {
	Day             string `json:"day"`
	XPEarned        int    `json:"xp_earned"`
	XPRemaining     int    `json:"xp_remaining"`
	ImpactEvents    int    `json:"impact_events"`
	ImpactRemaining int    `json:"impact_events_remaining"`
}

// Usage reports today's counters for a user
func (l *Limiter) Usage(ctx context.Context, userID string, at time.Time) (Usage, error) {
	day := l.Day(at)
	xp, err := l.ledger.Used(ctx, Bucket{Kind: CounterXP, UserID: userID, Day: day})
	if err != nil {
		return Usage{}, err
	}
	events, err := l.ledger.Used(ctx, Bucket{Kind: CounterImpact, UserID: userID, Day: day})
	if err != nil {
		return Usage{}, err
	}
	return Usage{
		Day:             day,
		XPEarned:        xp,
		XPRemaining:     max(l.xpCap-xp, 0),
		ImpactEvents:    events,
		ImpactRemaining: max(l.impactEventCap-events, 0),
	}, nil
}

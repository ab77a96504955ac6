package worker

import (
	"context"
	"sync"
	"time"

	"github.com/moniyo/financequest/internal/domain"
	"github.com/moniyo/financequest/internal/event"
	"github.com/moniyo/financequest/internal/logger"
)

// Pruner drops daily counters older than a day. Backends that expire keys on
// their own do not implement it.
type Pruner interface {
	Prune(beforeDay string) int
}

// DailyResetWorker runs at midnight in the daily cap time zone. It prunes the
// previous day's cap counters and announces the new day.
type DailyResetWorker struct {
	pruner    Pruner
	publisher event.Publisher
	loc       *time.Location
	now       func() time.Time

	timer    *time.Timer
	shutdown chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
	mu       sync.Mutex
}

// NewDailyResetWorker creates a new DailyResetWorker. pruner and publisher may be nil.
func NewDailyResetWorker(pruner Pruner, publisher event.Publisher, loc *time.Location) *DailyResetWorker {
	if loc == nil {
		loc = time.UTC
	}
	return &DailyResetWorker{
		pruner:    pruner,
		publisher: publisher,
		loc:       loc,
		now:       time.Now,
		shutdown:  make(chan struct{}),
	}
}

// Start schedules the first reset
func (w *DailyResetWorker) Start() {
	w.scheduleNext()
}

func (w *DailyResetWorker) scheduleNext() {
	log := logger.FromContext(context.Background())
	duration := timeUntilNextReset(w.now(), w.loc)

	w.mu.Lock()
	defer w.mu.Unlock()

	select {
	case <-w.shutdown:
		return
	default:
	}

	if w.timer != nil {
		w.timer.Stop()
	}

	// Long waits park on a standby timer that wakes shortly before the reset
	if duration > standbyThreshold {
		wait := duration - standbyLead
		w.timer = time.AfterFunc(wait, w.scheduleNext)
		log.Info(LogMsgDailyResetStandby, "next_check_at", w.now().Add(wait))
		return
	}

	w.timer = time.AfterFunc(duration, w.fire)
	log.Info(LogMsgDailyResetApproach, "next_reset_at", w.now().Add(duration), "timezone", w.loc.String())
}

func (w *DailyResetWorker) fire() {
	select {
	case <-w.shutdown:
		return
	default:
	}

	// An early fire reschedules for the remaining time
	rem := timeUntilNextReset(w.now(), w.loc)
	if rem > earlyFireTolerance && rem < 23*time.Hour {
		w.scheduleNext()
		return
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.RunReset(context.Background())
	}()
	w.scheduleNext()
}

// RunReset prunes counters from earlier days and publishes daily_reset_complete.
// It returns the number of counters removed.
func (w *DailyResetWorker) RunReset(ctx context.Context) int64 {
	log := logger.FromContext(ctx)
	log.Info(LogMsgDailyResetStarting)

	now := w.now()
	today := now.In(w.loc).Format(domain.DayLayout)

	var removed int64
	if w.pruner != nil {
		removed = int64(w.pruner.Prune(today))
	}
	log.Info(LogMsgDailyResetCompleted, "day", today, "records_affected", removed)

	if w.publisher != nil {
		w.publisher.PublishWithRetry(ctx, event.NewDailyResetCompleteEvent(now.UTC(), removed))
	}
	return removed
}

// Shutdown cancels the pending timer and waits for an in-flight reset
func (w *DailyResetWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgDailyResetShutdown)

	w.once.Do(func() { close(w.shutdown) })

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		log.Warn("Daily reset worker shutdown timeout")
		return ctx.Err()
	}
}

// timeUntilNextReset is the duration from now until the next midnight in loc
func timeUntilNextReset(now time.Time, loc *time.Location) time.Duration {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(local)
}

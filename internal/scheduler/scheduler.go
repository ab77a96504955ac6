package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/moniyo/financequest/internal/logger"
	"github.com/moniyo/financequest/internal/worker"
)

// Enqueuer accepts jobs for asynchronous execution
type Enqueuer interface {
	Enqueue(job worker.Job) bool
}

// Scheduler feeds jobs into a worker pool on fixed intervals
type Scheduler struct {
	pool     Enqueuer
	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a new scheduler
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule enqueues job every interval until Stop. When runNow is set the
// job is also enqueued immediately.
func (s *Scheduler) Schedule(name string, interval time.Duration, runNow bool, job worker.Job) {
	log := logger.FromContext(context.Background())
	log.Info("Job scheduled", "job", name, "interval", interval.String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		if runNow {
			s.enqueue(name, job)
		}
		for {
			select {
			case <-ticker.C:
				s.enqueue(name, job)
			case <-s.quit:
				return
			}
		}
	}()
}

func (s *Scheduler) enqueue(name string, job worker.Job) {
	if !s.pool.Enqueue(job) {
		logger.FromContext(context.Background()).Warn("Scheduled job skipped", "job", name)
	}
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}

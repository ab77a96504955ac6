package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/moniyo/financequest/internal/testing/leaktest"
	"github.com/moniyo/financequest/internal/worker"
)

type countingJob struct {
	runs atomic.Int32
	done chan struct{}
}

func (j *countingJob) Process(context.Context) error {
	j.runs.Add(1)
	select {
	case j.done <- struct{}{}:
	default:
	}
	return nil
}

type rejectingPool struct {
	attempts atomic.Int32
}

func (p *rejectingPool) Enqueue(worker.Job) bool {
	p.attempts.Add(1)
	return false
}

func TestScheduler(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &countingJob{done: make(chan struct{}, 10)}
	sched.Schedule("counting", 10*time.Millisecond, false, job)

	timeout := time.After(time.Second)
	for seen := 0; seen < 2; seen++ {
		select {
		case <-job.done:
		case <-timeout:
			t.Fatal("timeout waiting for job execution")
		}
	}
	assert.GreaterOrEqual(t, job.runs.Load(), int32(2))
}

func TestScheduler_RunNow(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &countingJob{done: make(chan struct{}, 1)}
	sched.Schedule("cleanup", time.Hour, true, job)

	select {
	case <-job.done:
	case <-time.After(time.Second):
		t.Fatal("job did not run immediately")
	}
}

func TestScheduler_FullPoolDoesNotBlock(t *testing.T) {
	pool := &rejectingPool{}
	sched := New(pool)
	sched.Schedule("rejected", 5*time.Millisecond, true, &countingJob{done: make(chan struct{})})

	assert.Eventually(t, func() bool { return pool.attempts.Load() >= 3 }, time.Second, 5*time.Millisecond)
	sched.Stop()
}

func TestScheduler_StopReleasesGoroutines(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		sched := New(&rejectingPool{})
		sched.Schedule("a", time.Hour, false, &countingJob{done: make(chan struct{})})
		sched.Schedule("b", time.Hour, false, &countingJob{done: make(chan struct{})})
		sched.Stop()
		sched.Stop()
	})
}

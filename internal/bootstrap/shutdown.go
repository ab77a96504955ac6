package bootstrap

import (
	"context"
	"log/slog"

	"github.com/moniyo/financequest/internal/analytics"
	"github.com/moniyo/financequest/internal/event"
	"github.com/moniyo/financequest/internal/scheduler"
	"github.com/moniyo/financequest/internal/worker"
)

// Stopper is a component with a context-aware shutdown
type Stopper interface {
	Stop(ctx context.Context) error
}

// NamedCloser is a resource released last
type NamedCloser struct {
	Name  string
	Close func() error
}

// ShutdownComponents holds everything that needs a graceful shutdown. Nil
// fields are skipped.
type ShutdownComponents struct {
	Server             Stopper
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	DailyResetWorker   *worker.DailyResetWorker
	ResilientPublisher *event.ResilientPublisher
	Analytics          *analytics.PostHogSink
	Closers            []NamedCloser
}

// GracefulShutdown stops components in dependency order:
//  1. HTTP server, so no new requests arrive
//  2. schedulers and workers, so no new background work starts
//  3. the event publisher, flushing pending retries
//  4. the analytics sink, flushing queued captures
//  5. storage and cache connections
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.DailyResetWorker != nil {
		if err := c.DailyResetWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgDailyResetWorkerFailed, "error", err)
		}
	}
	if c.WorkerPool != nil {
		c.WorkerPool.Stop()
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.Analytics != nil {
		c.Analytics.Close(ctx)
	}

	CloseAll(c.Closers)

	slog.Info(LogMsgServerStopped)
}

// CloseAll releases closers in order, logging failures
func CloseAll(closers []NamedCloser) {
	for _, closer := range closers {
		if closer.Close == nil {
			continue
		}
		if err := closer.Close(); err != nil {
			slog.Error(LogMsgCloseFailed, "component", closer.Name, "error", err)
		}
	}
}

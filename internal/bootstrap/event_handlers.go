package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/moniyo/financequest/internal/analytics"
	"github.com/moniyo/financequest/internal/event"
	"github.com/moniyo/financequest/internal/eventlog"
	"github.com/moniyo/financequest/internal/metrics"
)

// EventHandlerDependencies holds the subscribers attached to the bus
type EventHandlerDependencies struct {
	EventBus        event.Bus
	EventLogService eventlog.Service
	Analytics       *analytics.PostHogSink
}

// RegisterEventHandlers subscribes the metrics collector, the event logger
// and the analytics sink. Nil subscribers are skipped.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.EventLogService != nil {
		if err := deps.EventLogService.Subscribe(deps.EventBus); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLogger, err)
		}
		slog.Info(LogMsgEventLoggerInitialized)
	}

	if deps.Analytics != nil {
		deps.Analytics.Register(deps.EventBus)
		slog.Info(LogMsgAnalyticsSinkRegistered, "types", len(event.AnalyticsTypes))
	}

	return nil
}

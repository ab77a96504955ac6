package bootstrap

import (
	"log/slog"

	"github.com/moniyo/financequest/internal/analytics"
	"github.com/moniyo/financequest/internal/config"
)

// NewAnalyticsSink builds the PostHog sink. Without an API key captures are
// discarded by a no-op client so the wiring stays the same.
func NewAnalyticsSink(cfg *config.Config) (*analytics.PostHogSink, error) {
	if cfg.PostHogAPIKey == "" {
		slog.Info(LogMsgAnalyticsDisabled)
		return analytics.NewPostHogSink(analytics.NopClient{}), nil
	}

	client, err := analytics.NewPostHogClient(cfg.PostHogAPIKey, cfg.PostHogEndpoint)
	if err != nil {
		return nil, err
	}
	slog.Info(LogMsgAnalyticsEnabled, "endpoint", cfg.PostHogEndpoint)
	return analytics.NewPostHogSink(client), nil
}

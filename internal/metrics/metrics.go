package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func counter(subsystem, name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, labels)
}

func histogram(subsystem, name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}, labels)
}

// HTTP
var (
	HTTPRequestsTotal = counter(subsystemHTTP, "requests_total",
		"HTTP requests by route pattern and status.", LabelMethod, LabelPath, LabelStatus)

	HTTPRequestDuration = histogram(subsystemHTTP, "request_duration_seconds",
		"HTTP request latency.", HTTPLatencyBuckets, LabelMethod, LabelPath)

	HTTPResponseSize = histogram(subsystemHTTP, "response_size_bytes",
		"HTTP response body size.", HTTPSizeBuckets, LabelMethod, LabelPath)

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: subsystemHTTP,
		Name:      "requests_in_flight",
		Help:      "HTTP requests currently being served.",
	})
)

// Event bus
var (
	EventsPublished = counter(subsystemEvents, "published_total",
		"Events observed on the bus.", LabelType)

	EventHandlerErrors = counter(subsystemEvents, "handler_errors_total",
		"Events whose payload could not be decoded by the metrics collector.", LabelType)
)

// Progression
var (
	XPAwarded = counter(subsystemProgression, "xp_awarded_total",
		"XP granted after daily caps.", LabelSource)

	XPCapped = counter(subsystemProgression, "xp_capped_total",
		"XP awards reduced by the daily cap.", LabelSource)

	LevelUps = counter(subsystemProgression, "level_ups_total",
		"Level ups by the level reached.", LabelLevel)

	BadgesUnlocked = counter(subsystemProgression, "badges_unlocked_total",
		"Badges unlocked.", LabelBadge)

	MilestonesUnlocked = counter(subsystemProgression, "milestones_unlocked_total",
		"Impact milestones unlocked.", LabelMilestone)

	QuestsCompleted = counter(subsystemProgression, "quests_completed_total",
		"Quests completed by category.", LabelCategory)

	SavingsChanges = counter(subsystemProgression, "savings_changes_total",
		"Savings events recorded, updated or deleted.", LabelChange)
)

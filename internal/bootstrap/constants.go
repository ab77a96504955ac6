package bootstrap

import "time"

const (
	// DirPermission is the permission for directories created at startup
	DirPermission = 0755
)

// Event system defaults
const (
	// EventDefaultMaxRetries is the number of retry attempts for a failed publish
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the base delay of the exponential backoff
	EventDefaultRetryDelay = 2 * time.Second
)

// Worker pool sizing for background jobs
const (
	WorkerPoolSize      = 2
	WorkerPoolQueueSize = 16
)

// RedisPingTimeout bounds the startup connectivity check
const RedisPingTimeout = 5 * time.Second

// Log messages
const (
	LogMsgStarting                       = "Starting FinanceQuest"
	LogMsgConfigurationLoaded            = "Configuration loaded"
	LogMsgConfigWarning                  = "Configuration warning"
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgStorageOpened                  = "Storage backend opened"
	LogMsgMigrationsApplied              = "Database migrations applied"
	LogMsgLedgerSelected                 = "Daily cap ledger selected"
	LogMsgAnalyticsEnabled               = "PostHog analytics enabled"
	LogMsgAnalyticsDisabled              = "PostHog analytics disabled, POSTHOG_API_KEY not set"
	LogMsgQuestCatalogLoaded             = "Quest catalog loaded"
	LogMsgMetricsCollectorRegistered     = "Metrics collector registered"
	LogMsgEventLoggerInitialized         = "Event logger initialized"
	LogMsgAnalyticsSinkRegistered        = "Analytics sink registered"
	LogMsgShuttingDownServer             = "Shutting down server..."
	LogMsgShuttingDownEventPublisher     = "Shutting down event publisher..."
	LogMsgServerForcedShutdown           = "Server forced to shutdown"
	LogMsgResilientPublisherFailed       = "Resilient publisher shutdown failed"
	LogMsgDailyResetWorkerFailed         = "Daily reset worker shutdown failed"
	LogMsgCloseFailed                    = "Failed to close component"
	LogMsgServerStopped                  = "Server stopped"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// Error messages
const (
	ErrMsgUnknownStorageBackend      = "unknown storage backend"
	ErrMsgFailedOpenStorage          = "failed to open storage"
	ErrMsgFailedParseRedisURL        = "failed to parse REDIS_URL"
	ErrMsgFailedPingRedis            = "failed to reach redis"
	ErrMsgFailedLoadQuestCatalog     = "failed to load quest catalog"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	ErrMsgFailedSubscribeEventLogger = "failed to subscribe event logger"
)

package worker

import "time"

// Log messages for the worker pool
const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerQueueFull   = "Worker queue full, dropping job"
	LogMsgWorkerPoolStopped = "Worker pool stopped"
)

// Log messages for daily reset worker operations
const (
	LogMsgDailyResetStarting  = "Daily reset starting"
	LogMsgDailyResetCompleted = "Daily reset completed"
	LogMsgDailyResetStandby   = "Daily reset standby"
	LogMsgDailyResetApproach  = "Daily reset scheduled"
	LogMsgDailyResetShutdown  = "Shutting down daily reset worker"
)

const (
	// DefaultJobTimeout bounds a single job run
	DefaultJobTimeout = 5 * time.Minute

	// standbyThreshold is how far out a reset switches from standby to final approach
	standbyThreshold = time.Hour
	// standbyLead is how long before the reset the standby timer wakes
	standbyLead = 45 * time.Minute
	// earlyFireTolerance is how early a timer may fire before it is rescheduled
	earlyFireTolerance = 10 * time.Second
)

package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// LogMsgWorkerJobPanicked is logged when a job panics; the worker survives
const LogMsgWorkerJobPanicked = "Worker job panicked"

// ============================================================================
// Log Messages - Journey Worker
// ============================================================================

// Log messages for journey worker operations
const (
	LogMsgJourneyStarted  = "Journey worker started travel"
	LogMsgJourneyFinished = "Journey worker finished travel"
	LogMsgJourneyFailed   = "Journey ended without arriving"
)

// ============================================================================
// Log Messages - Autosave
// ============================================================================

// LogMsgAutosaveSkipped is logged when settings.autosave is off
const LogMsgAutosaveSkipped = "Autosave disabled in settings, skipping"

// ============================================================================
// Defaults
// ============================================================================

// DefaultQueueSize is the job queue capacity used by the application
const DefaultQueueSize = 16

// DefaultShutdownTimeout bounds how long Shutdown waits for journeys
const DefaultShutdownTimeout = 5 * time.Second

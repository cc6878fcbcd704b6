package bootstrap

import "time"

// File system permissions
const (
	DirPermission     = 0o755
	LogFilePermission = 0o644
)

// Logger configuration
const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"
	// LogFileRetentionCount is the number of older session logs kept beside the new one
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingChronoFarm  = "Starting ChronoFarm"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// Event system
const (
	LogMsgEventSystemInitialized    = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir = "failed to create dead-letter directory"
	LogMsgFailedOpenDeadLetter      = "failed to open dead-letter file"
)

// Catalog and persistence
const (
	LogMsgCatalogLoaded     = "Catalog loaded"
	LogMsgSaveBackendReady  = "Save backend ready"
	LogMsgSessionRestored   = "Session restored"
	ErrMsgFailedLoadCatalog = "failed to load catalog"
	ErrMsgUnknownBackend    = "unknown save backend"
	ErrMsgFailedConnectDB   = "failed to connect to database"
	ErrMsgFailedMigrate     = "failed to migrate database"
	ErrMsgFailedPingRedis   = "failed to reach redis"
	ErrMsgFailedOpenSaveDir = "failed to open save directory"
	ErrMsgFailedBuildStore  = "failed to create state store"
	ErrMsgFailedBuildSaves  = "failed to create save service"
	ErrMsgFailedBuildGame   = "failed to create game session"
	ErrMsgFailedRestoreGame = "failed to restore game"
	ErrMsgFailedWatchStore  = "failed to watch state store"
)

// Event handler registration
const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgNotifierRegistered         = "Toast notifier registered"
	LogMsgEventStreamRegistered      = "Event stream bridge registered"
)

// Shutdown
const (
	LogMsgShuttingDownServer  = "Shutting down server..."
	LogMsgServerStopped       = "Server stopped"
	LogMsgServerForcedShutdwn = "Server forced to shutdown"
	LogMsgFinalSaveFailed     = "Final save failed"
	LogMsgFinalSaveSkipped    = "Final save skipped, persistence disabled"
	LogMsgCloseFailed         = "Failed to close resource"
	LogMsgJourneyShutdownFail = "Journey worker shutdown failed"
)

// Scheduled job names
const (
	JobNameTick     = "tick"
	JobNameAutosave = "autosave"
)

// DefaultShutdownTimeout bounds GracefulShutdown when the caller gives no deadline
const DefaultShutdownTimeout = 10 * time.Second

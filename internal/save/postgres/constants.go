package postgres

// Error Messages - Save Operations
const (
	ErrMsgFailedToBeginTransaction = "failed to begin save transaction"
	ErrMsgFailedToReadSlot         = "failed to read save slot"
	ErrMsgFailedToWriteSlot        = "failed to write save slot"
	ErrMsgFailedToRollBackup       = "failed to roll previous save into backups"
	ErrMsgFailedToPruneBackups     = "failed to prune save backups"
	ErrMsgFailedToListBackups      = "failed to list save backups"
	ErrMsgFailedToMigrate          = "failed to apply save migrations"
)

// Log Messages
const (
	LogMsgMigrationsApplied = "Save migrations applied"
)

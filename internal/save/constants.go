package save

import (
	"errors"
	"time"
)

// Defaults for the save service
const (
	DefaultSlot      = "main"
	DefaultBackups   = 3
	DefaultCacheSize = 8
	DefaultCacheTTL  = 10 * time.Minute
)

// Where a loaded game came from
const (
	SourcePrimary = "primary"
	SourceBackup  = "backup"
	SourceDefault = "default"
)

// Error messages
const (
	ErrMsgNotFound           = "save not found"
	ErrMsgCorrupt            = "save file is corrupt"
	ErrMsgUnsupportedVersion = "save version is newer than this build"
	ErrMsgInvalidSlot        = "invalid save slot"
)

var (
	// ErrNotFound is returned by backends when a slot or backup does not exist
	ErrNotFound = errors.New(ErrMsgNotFound)
	// ErrCorrupt wraps every decode or validation failure
	ErrCorrupt = errors.New(ErrMsgCorrupt)
	// ErrUnsupportedVersion is returned for saves written by a newer build
	ErrUnsupportedVersion = errors.New(ErrMsgUnsupportedVersion)
	// ErrInvalidSlot rejects slot names that cannot be used as keys or file names
	ErrInvalidSlot = errors.New(ErrMsgInvalidSlot)
)

// Log messages
const (
	LogMsgSaved             = "Game saved"
	LogMsgLoaded            = "Game loaded"
	LogMsgPrimaryUnreadable = "Primary save unreadable, trying backups"
	LogMsgBackupUnreadable  = "Backup save unreadable"
	LogMsgFallbackDefault   = "No readable save, starting a new game"
	LogMsgMigrated          = "Save migrated"
)

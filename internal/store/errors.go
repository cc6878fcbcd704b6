package store

import "errors"

// Error message string constants
const (
	ErrMsgMalformedPath   = "malformed path"
	ErrMsgUnknownPath     = "unknown path"
	ErrMsgValidation      = "state validation failed"
	ErrMsgNotCollection   = "path does not address a collection"
	ErrMsgIndexOutOfRange = "index out of range"
	ErrMsgPathNotFound    = "path not found"
	ErrMsgNotSerializable = "value is not JSON-compatible"
)

var (
	// ErrMalformedPath is a caller contract violation: empty path or empty segment
	ErrMalformedPath = errors.New(ErrMsgMalformedPath)
	// ErrUnknownPath is returned when a write targets a root the schema does not know
	ErrUnknownPath   = errors.New(ErrMsgUnknownPath)
	ErrValidation    = errors.New(ErrMsgValidation)
	ErrNotCollection = errors.New(ErrMsgNotCollection)
	// ErrIndexOutOfRange is returned by SetAt for an index outside [0, len]
	ErrIndexOutOfRange = errors.New(ErrMsgIndexOutOfRange)
	ErrPathNotFound    = errors.New(ErrMsgPathNotFound)
	ErrNotSerializable = errors.New(ErrMsgNotSerializable)
)

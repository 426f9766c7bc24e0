package core

import "errors"

// Sentinel errors returned by the service. Their text is matched by the
// patterns in error_messages.go, so keep the two in sync.
var (
	ErrNoFile            = errors.New("no file provided")
	ErrEmptyFilename     = errors.New("empty filename")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrFileNotFound      = errors.New("file not found")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidDateRange  = errors.New("invalid date range")
)

package core

// error_messages.go maps technical errors to messages a seller can act on.
//
// # Error Codes Reference
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: the upload exceeds the configured size limit
//	          Patterns: "file too large", "request body too large"
//	FILE002 - Unreadable file: neither spreadsheet nor delimited text
//	          Patterns: "could not decode"
//	FILE003 - Encoding error: the text could not be converted to UTF-8
//	          Patterns: "encoding error"
//	FILE004 - No file: the request did not carry a file
//	          Patterns: "no file provided"
//	FILE005 - Empty file: the upload has no content
//	          Patterns: "empty file"
//	FILE006 - Unsupported format: extension is not xlsx, xls, csv, tsv or txt
//	          Patterns: "unsupported file format"
//	FILE007 - Empty filename: the uploaded file has no name
//	          Patterns: "empty filename"
//	FILE008 - File not found: the stored file does not exist
//	          Patterns: "file not found"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid date: a date filter could not be parsed
//	         Patterns: "invalid date range" is matched first, then "invalid date"
//	VAL002 - Invalid date range: start is after end
//	VAL003 - Invalid request: a query or body parameter failed validation
//	         Patterns: "invalid request"
//
// # Storage Errors (STO001-STO099)
//
//	STO001 - Storage unreachable: "connection refused", "no such host"
//	STO002 - Storage interrupted: "connection reset"
//	STO003 - Storage busy: "database is locked", "deadlock"
//	STO004 - Bucket missing: "nosuchbucket"
//
// # Upload Errors (UPL001-UPL099)
//
//	UPL002 - System busy: too many uploads in progress ("too many concurrent uploads")
//	UPL004 - Request cancelled: "context canceled"
//	UPL005 - Request timeout: "context deadline exceeded", "timeout"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no pattern matches; check the logs for the technical error.
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns precede general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// File errors
	{"file too large", UserMessage{"File exceeds the maximum upload size", "Export a shorter period or split the file", "FILE001"}},
	{"request body too large", UserMessage{"File exceeds the maximum upload size", "Export a shorter period or split the file", "FILE001"}},
	{"could not decode", UserMessage{"The file could not be read as a spreadsheet or CSV", "Upload the export exactly as downloaded from the marketplace", "FILE002"}},
	{"encoding error", UserMessage{"The file contains invalid characters", "Save the file as UTF-8 and try again", "FILE003"}},
	{"no file provided", UserMessage{"No file was selected", "Please select an export file to upload", "FILE004"}},
	{"empty file", UserMessage{"The uploaded file is empty", "Please upload an export with data rows", "FILE005"}},
	{"unsupported file format", UserMessage{"This file type is not supported", "Upload an .xlsx, .xls, .csv, .tsv or .txt export", "FILE006"}},
	{"empty filename", UserMessage{"The uploaded file has no name", "Rename the file and upload it again", "FILE007"}},
	{"file not found", UserMessage{"The file was not found", "Refresh the file list; it may have been removed", "FILE008"}},

	// Validation errors
	{"invalid date range", UserMessage{"The start date is after the end date", "Swap the dates or widen the period", "VAL002"}},
	{"invalid date", UserMessage{"Invalid date format", "Use YYYY-MM-DD or DD/MM/YYYY", "VAL001"}},
	{"invalid request", UserMessage{"The request parameters are invalid", "Check the values and try again", "VAL003"}},

	// Storage errors
	{"connection refused", UserMessage{"Unable to reach file storage", "Please try again in a few moments", "STO001"}},
	{"no such host", UserMessage{"Unable to reach file storage", "Please try again in a few moments", "STO001"}},
	{"connection reset", UserMessage{"File storage connection was interrupted", "Please try again", "STO002"}},
	{"database is locked", UserMessage{"File storage is busy", "Please try again", "STO003"}},
	{"deadlock", UserMessage{"File storage is busy", "Please try again", "STO003"}},
	{"nosuchbucket", UserMessage{"File storage bucket is missing", "Contact support to configure storage", "STO004"}},

	// Upload errors
	{"too many concurrent uploads", UserMessage{"Too many uploads in progress", "Please wait a moment and try again", "UPL002"}},
	{"context canceled", UserMessage{"Request was cancelled", "Please try again", "UPL004"}},
	{"context deadline exceeded", UserMessage{"Request timed out", "Try a smaller file or try again later", "UPL005"}},
	{"timeout", UserMessage{"Request timed out", "Try a smaller file or try again later", "UPL005"}},

	// Rate limiting
	{"rate limit", UserMessage{"Too many requests", "Please wait a moment before trying again", "RATE001"}},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns the zero UserMessage for a nil error and ERR000 when nothing matches.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matched a specific pattern rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user message. Error returns
// the user message; Unwrap returns the technical error for logging.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err into a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{Technical: err, User: MapError(err)}
}

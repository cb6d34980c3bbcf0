// Package errors defines stable error codes and a structured error
// type shared by the CLI and the HTTP API.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// InputAbsent indicates a required input (stack trace, files) was missing
	InputAbsent ErrorCode = "INPUT_ABSENT"
	// InvalidRequest indicates a malformed request or flag value
	InvalidRequest ErrorCode = "INVALID_REQUEST"
	// ParseFailed indicates a source file could not be parsed
	ParseFailed ErrorCode = "PARSE_FAILED"
	// RepoNotFound indicates the repository root does not exist
	RepoNotFound ErrorCode = "REPO_NOT_FOUND"
	// RunNotFound indicates an unknown analysis run ID
	RunNotFound ErrorCode = "RUN_NOT_FOUND"
	// IndexMissing indicates the SCIP index file was not found
	IndexMissing ErrorCode = "INDEX_MISSING"
	// Unauthorized indicates a missing or invalid API token
	Unauthorized ErrorCode = "UNAUTHORIZED"
	// RateLimited indicates an upstream rate limit was hit
	RateLimited ErrorCode = "RATE_LIMITED"
	// BackendUnavailable indicates the triage backend is unreachable
	BackendUnavailable ErrorCode = "BACKEND_UNAVAILABLE"
	// Timeout indicates an operation timed out
	Timeout ErrorCode = "TIMEOUT"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// AppError represents a stacklens error with code and message
type AppError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error
}

// New creates a new AppError
func New(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	IndexMissing: {
		{
			Type:        RunCommand,
			Command:     "scip-java index",
			Safe:        true,
			Description: "Generate a SCIP index for the repository",
		},
	},
	RateLimited: {
		{
			Type:        RunCommand,
			Command:     "sleep 60 && stacklens collect",
			Safe:        true,
			Description: "Retry after the rate limit window",
		},
	},
	BackendUnavailable: {
		{
			Type:        RunCommand,
			Command:     "stacklens analyze --send",
			Safe:        true,
			Description: "Retry sending the payload to the triage backend",
		},
	},
	Unauthorized: {
		{
			Type:        RunCommand,
			Command:     "stacklens token create",
			Safe:        true,
			Description: "Issue a new API token",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}

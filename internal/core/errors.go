// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Config errors
	ErrConfigCorrupt = &Error{Code: "CONFIG_CORRUPT", Message: "config file exists but cannot be parsed"}
	ErrAuthMissing   = &Error{Code: "AUTH_MISSING", Message: "no API key configured"}

	// Template errors
	ErrTemplateNotFound = &Error{Code: "TEMPLATE_NOT_FOUND", Message: "template not found"}
	ErrTemplateInvalid  = &Error{Code: "TEMPLATE_INVALID", Message: "template is missing required fields"}

	// Prompt errors
	ErrNoPrompt     = &Error{Code: "NO_PROMPT", Message: "no prompt supplied"}
	ErrUnknownModel = &Error{Code: "UNKNOWN_MODEL", Message: "unknown model name"}

	// Transport errors
	ErrRequestFailed = &Error{Code: "REQUEST_FAILED", Message: "LLM request failed"}
)

// RequestError carries the HTTP status of a failed API call.
// It matches ErrRequestFailed under errors.Is.
type RequestError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[REQUEST_FAILED] %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("[REQUEST_FAILED] %s", e.Message)
}

// Is implements errors.Is matching against ErrRequestFailed.
func (e *RequestError) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return t.Code == ErrRequestFailed.Code
	}
	return false
}

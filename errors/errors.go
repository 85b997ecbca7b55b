package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a short, user-presentable error message.
	Message string `json:"message"`
	// Retryable indicates if re-initiating the operation may succeed.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the internal diagnostic representation of the error.
// This is what gets logged; the user sees Message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// CodeOf extracts the ErrorCode from err, or ErrCodeInternal for
// errors that are not AppErrors.
func CodeOf(err error) ErrorCode {
	var e *AppError
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// Is reports whether err carries the given error code.
func Is(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// UserMessage returns the user-presentable message for err. Errors that are
// not AppErrors map to a generic message so internal details never leak to
// the page.
func UserMessage(err error) string {
	var e *AppError
	if stderrors.As(err, &e) {
		return e.Message
	}
	return "Something went wrong. Please try again."
}

// --- Common Error Constructors ---

// Device creates an AppError for an unavailable or misbehaving microphone.
// The reason should already be human-readable (permission denied, in use, ...).
func Device(reason string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeDevice, Message: fmt.Sprintf("Microphone error: %s.", reason),
		Retryable: false, Cause: cause,
		Details: map[string]any{"reason": reason},
	}
}

// UnsupportedFormat creates an AppError for an unavailable audio encoding.
func UnsupportedFormat(mimeType string) *AppError {
	return &AppError{
		Code: ErrCodeUnsupportedFormat, Message: "Audio recording is not supported in this environment.",
		Retryable: false,
		Details:   map[string]any{"mime_type": mimeType},
	}
}

// Auth creates an AppError for a rejected API key.
func Auth(service string) *AppError {
	return &AppError{
		Code: ErrCodeAuth, Message: fmt.Sprintf("The %s API key was rejected. Please check your settings.", service),
		Retryable: false,
		Details:   map[string]any{"service": service},
	}
}

// RateLimited creates an AppError for a rate-limited remote call.
func RateLimited(service string) *AppError {
	return &AppError{
		Code: ErrCodeRateLimited, Message: "Too many requests. Please wait a moment and try again.",
		Retryable: true,
		Details:   map[string]any{"service": service},
	}
}

// Timeout creates an AppError for an exhausted polling budget or aborted request.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "The request took too long. Please try again.",
		Retryable: true,
		Details:   map[string]any{"operation": operation},
	}
}

// EmptyResult creates an AppError for a remote call that returned no text.
func EmptyResult(stage string) *AppError {
	return &AppError{
		Code: ErrCodeEmptyResult, Message: "No speech was detected. Please try again.",
		Retryable: true,
		Details:   map[string]any{"stage": stage},
	}
}

// NotEditable creates an AppError for a missing or non-editable insertion target.
func NotEditable() *AppError {
	return &AppError{
		Code: ErrCodeNotEditable, Message: "Click into a text field before dictating.",
		Retryable: false,
	}
}

// NoActiveSession creates an AppError for a stop request with nothing recording.
func NoActiveSession() *AppError {
	return &AppError{
		Code: ErrCodeNoActiveSession, Message: "No recording is in progress.",
		Retryable: false,
	}
}

// PageUnsupported creates an AppError for a page that cannot host the injector.
func PageUnsupported(url string) *AppError {
	return &AppError{
		Code: ErrCodePageUnsupported, Message: "Dictation is not available on this page.",
		Retryable: false,
		Details:   map[string]any{"url": url},
	}
}

// Internal creates an AppError for an uncategorized internal failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "Something went wrong. Please try again.",
		Retryable: false, Cause: cause,
	}
}

// Remote creates an AppError for a failure reported by a remote service.
// The remote diagnostic goes into details, never into the user message.
func Remote(service, remoteError string) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: fmt.Sprintf("The %s service reported an error. Please try again.", service),
		Retryable: true,
		Details:   map[string]any{"service": service, "remote_error": remoteError},
	}
}

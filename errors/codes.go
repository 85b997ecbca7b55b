package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Capture/device errors
const (
	// ErrCodeDevice indicates the microphone is unavailable, denied, or busy.
	ErrCodeDevice ErrorCode = "DEVICE_ERROR"
	// ErrCodeUnsupportedFormat indicates the required audio encoding is unavailable.
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
)

// Remote service errors
const (
	// ErrCodeAuth indicates a remote API key was rejected.
	ErrCodeAuth ErrorCode = "AUTH_FAILED"
	// ErrCodeRateLimited indicates the remote service is rate limiting us.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeTimeout indicates the polling budget was exhausted or a request was aborted.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeEmptyResult indicates a remote call succeeded but returned no usable text.
	ErrCodeEmptyResult ErrorCode = "EMPTY_RESULT"
)

// Delivery/session errors
const (
	// ErrCodeNotEditable indicates there is no valid insertion target.
	ErrCodeNotEditable ErrorCode = "NOT_EDITABLE"
	// ErrCodeNoActiveSession indicates stop was requested with nothing recording.
	ErrCodeNoActiveSession ErrorCode = "NO_ACTIVE_SESSION"
	// ErrCodePageUnsupported indicates the active page cannot host the injector.
	ErrCodePageUnsupported ErrorCode = "PAGE_UNSUPPORTED"
	// ErrCodeInternal indicates an uncategorized internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeDevice:            false,
	ErrCodeUnsupportedFormat: false,
	ErrCodeAuth:              false,
	ErrCodeRateLimited:       true,
	ErrCodeTimeout:           true,
	ErrCodeEmptyResult:       true,
	ErrCodeNotEditable:       false,
	ErrCodeNoActiveSession:   false,
	ErrCodePageUnsupported:   false,
	ErrCodeInternal:          false,
}

// IsRetryableCode returns true if the error code indicates an error the user
// may reasonably resolve by re-initiating dictation.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

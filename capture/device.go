package capture

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DeviceReason classifies why microphone acquisition failed.
type DeviceReason string

const (
	// ReasonPermissionDenied means the user or browser denied access.
	ReasonPermissionDenied DeviceReason = "permission_denied"
	// ReasonNotFound means no microphone is present.
	ReasonNotFound DeviceReason = "not_found"
	// ReasonBusy means another application holds the device.
	ReasonBusy DeviceReason = "busy"
	// ReasonOverconstrained means the constraint set cannot be satisfied.
	ReasonOverconstrained DeviceReason = "overconstrained"
	// ReasonBlocked means a platform policy blocks capture.
	ReasonBlocked DeviceReason = "blocked"
)

// Message returns the human-readable cause for the reason.
func (r DeviceReason) Message() string {
	switch r {
	case ReasonPermissionDenied:
		return "microphone access was denied"
	case ReasonNotFound:
		return "no microphone was found"
	case ReasonBusy:
		return "the microphone is in use by another application"
	case ReasonOverconstrained:
		return "the microphone does not support the required settings"
	case ReasonBlocked:
		return "microphone access is blocked by policy"
	default:
		return "the microphone is unavailable"
	}
}

// DeviceError is returned by Device implementations when acquisition fails.
type DeviceError struct {
	// Reason classifies the failure.
	Reason DeviceReason
	// Err is the underlying platform error.
	Err error
}

// Error implements the error interface.
func (e *DeviceError) Error() string {
	return fmt.Sprintf("capture: device %s: %v", e.Reason, e.Err)
}

// Unwrap returns the underlying platform error.
func (e *DeviceError) Unwrap() error { return e.Err }

// ErrUnsupportedFormat is returned by an EncoderFactory when the required
// encoding is unavailable on the platform.
var ErrUnsupportedFormat = errors.New("capture: required audio encoding unavailable")

// Track is a single media track of an acquired stream.
type Track interface {
	// Stop releases the track. Must be safe to call more than once.
	Stop()
}

// Stream is an acquired microphone stream.
type Stream interface {
	// Tracks returns all tracks of the stream.
	Tracks() []Track
}

// Device acquires microphone streams.
type Device interface {
	// Acquire opens a stream satisfying the constraints. Failures are
	// reported as *DeviceError.
	Acquire(ctx context.Context, c Constraints) (Stream, error)
}

// EncoderOptions configures an encoder for one recording.
type EncoderOptions struct {
	// MIMEType is the required encoding.
	MIMEType string
	// BitsPerSecond is the target bitrate.
	BitsPerSecond int
	// OnData receives each flushed fragment. Called from the encoder's
	// context; fragments arrive in order.
	OnData func(fragment []byte)
}

// Encoder encodes one stream into fragments.
type Encoder interface {
	// Start begins encoding, flushing a fragment through OnData at the
	// given fixed interval.
	Start(flushInterval time.Duration) error
	// Stop finalizes encoding, flushing any remaining data through OnData
	// before returning.
	Stop(ctx context.Context) error
	// MIMEType returns the actual encoding in use.
	MIMEType() string
}

// EncoderFactory creates an encoder for a stream, or ErrUnsupportedFormat
// when the requested encoding is unavailable.
type EncoderFactory func(s Stream, opts EncoderOptions) (Encoder, error)

package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_ErrorIncludesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Device("permission denied", cause)

	if !strings.Contains(err.Error(), "DEVICE_ERROR") {
		t.Errorf("expected code in diagnostic, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected cause in diagnostic, got %q", err.Error())
	}
	if strings.Contains(err.Message, "connection refused") {
		t.Errorf("cause leaked into user message: %q", err.Message)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := Internal(cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"auth error", Auth("transcription"), ErrCodeAuth},
		{"rate limited", RateLimited("refinement"), ErrCodeRateLimited},
		{"timeout", Timeout("poll"), ErrCodeTimeout},
		{"wrapped", fmt.Errorf("outer: %w", NotEditable()), ErrCodeNotEditable},
		{"plain error", stderrors.New("plain"), ErrCodeInternal},
		{"no session", NoActiveSession(), ErrCodeNoActiveSession},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	if !Is(Timeout("poll"), ErrCodeTimeout) {
		t.Error("expected Is to match timeout code")
	}
	if Is(Timeout("poll"), ErrCodeAuth) {
		t.Error("expected Is to reject mismatched code")
	}
}

func TestUserMessage_GenericForUnknownErrors(t *testing.T) {
	msg := UserMessage(stderrors.New("dial tcp 10.0.0.1: i/o timeout"))
	if strings.Contains(msg, "dial tcp") {
		t.Errorf("internal detail leaked to user: %q", msg)
	}
	if msg == "" {
		t.Error("expected a non-empty fallback message")
	}
}

func TestRetryableByCode(t *testing.T) {
	if Auth("asr").Retryable {
		t.Error("auth errors must not be retryable")
	}
	if !RateLimited("asr").Retryable {
		t.Error("rate limit errors should be retryable")
	}
	if !Timeout("poll").Retryable {
		t.Error("timeouts should be retryable")
	}
}

func TestWithDetail(t *testing.T) {
	err := New(ErrCodeInternal, "test").WithDetail("stage", "transcription")
	if err.Details["stage"] != "transcription" {
		t.Errorf("expected detail to be set, got %v", err.Details)
	}
}

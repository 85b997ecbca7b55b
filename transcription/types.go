package transcription

// Status is the remote prediction lifecycle state.
type Status string

const (
	// StatusStarting means the prediction was accepted but has not begun.
	StatusStarting Status = "starting"
	// StatusProcessing means the prediction is running.
	StatusProcessing Status = "processing"
	// StatusSucceeded is the successful terminal state.
	StatusSucceeded Status = "succeeded"
	// StatusFailed is the failed terminal state.
	StatusFailed Status = "failed"
	// StatusCanceled is the canceled terminal state.
	StatusCanceled Status = "canceled"
)

// Terminal reports whether the status ends polling.
func (s Status) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusCanceled:
		return true
	}
	return false
}

// predictionInput is the model input of a creation request. Decoding
// parameters are fixed for reproducibility.
type predictionInput struct {
	// Audio is the recording as a base64 data URI.
	Audio string `json:"audio"`
	// Language pins the expected language.
	Language string `json:"language"`
	// Temperature is zero for deterministic decoding.
	Temperature float64 `json:"temperature"`
	// Translate stays off; we transcribe, never translate.
	Translate bool `json:"translate"`
}

// createRequest is the body of a prediction creation request.
type createRequest struct {
	// Version identifies the model to run.
	Version string `json:"version"`
	// Input is the model input.
	Input predictionInput `json:"input"`
}

// prediction is the service's representation of one transcription job.
type prediction struct {
	// ID identifies the prediction for status polling.
	ID string `json:"id"`
	// Status is the lifecycle state.
	Status Status `json:"status"`
	// Output is the transcript once succeeded.
	Output string `json:"output,omitempty"`
	// Error is the remote error description once failed.
	Error string `json:"error,omitempty"`
}

package messaging

// Type enumerates the message types of the cross-context protocol.
type Type string

const (
	// TypeStartRecording asks the capture context to begin recording.
	TypeStartRecording Type = "start-recording"
	// TypeStopRecording asks the capture context to stop and yield audio.
	TypeStopRecording Type = "stop-recording"
	// TypeRecordingStarted tells the page recording began (UI state only).
	TypeRecordingStarted Type = "recording-started"
	// TypeRecordingStopped tells the page recording ended (no data yet).
	TypeRecordingStopped Type = "recording-stopped"
	// TypeRefinementStarted tells the page the transcript is being refined.
	TypeRefinementStarted Type = "refinement-started"
	// TypeTranscriptionComplete delivers the final text to the page.
	TypeTranscriptionComplete Type = "transcription-complete"
	// TypeTranscriptionError delivers a user-presentable error to the page.
	TypeTranscriptionError Type = "transcription-error"
	// TypePing probes whether a context is present. Also used as the
	// keepalive signal for suspendable contexts.
	TypePing Type = "ping"
)

// Message is the envelope exchanged between contexts.
type Message struct {
	// Type identifies the message.
	Type Type `json:"type"`
	// Target names the receiving context (empty for replies).
	Target string `json:"target,omitempty"`
	// Payload carries the message-specific body, if any.
	Payload any `json:"payload,omitempty"`
}

// StopRecordingResult is the payload of a stop-recording response.
type StopRecordingResult struct {
	// OK indicates capture stopped and produced audio.
	OK bool `json:"ok"`
	// Audio is the encoded audio, base64 when serialized.
	Audio []byte `json:"audio,omitempty"`
	// MIMEType tags the audio encoding.
	MIMEType string `json:"mime_type,omitempty"`
	// Code is the error code when OK is false, preserved across the
	// context boundary so the receiver can rebuild the typed error.
	Code string `json:"code,omitempty"`
	// Error is set when OK is false.
	Error string `json:"error,omitempty"`
}

// TextPayload is the payload of a transcription-complete message.
type TextPayload struct {
	Text string `json:"text"`
}

// ErrorPayload is the payload of a transcription-error message.
type ErrorPayload struct {
	Error string `json:"error"`
}

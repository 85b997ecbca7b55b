package coordinator

// State is the dictation state machine state. Transitions are
// idle → recording → processing → (refining) → idle, with an error path
// from any non-idle state back to idle.
type State string

const (
	// StateIdle means no session is active.
	StateIdle State = "idle"
	// StateRecording means the microphone is live and encoding.
	StateRecording State = "recording"
	// StateProcessing means captured audio is being transcribed.
	StateProcessing State = "processing"
	// StateRefining means the transcript is being rewritten by the LLM.
	StateRefining State = "refining"
)

// Busy reports whether the pipeline is running and toggles must be
// dropped.
func (s State) Busy() bool {
	return s == StateProcessing || s == StateRefining
}

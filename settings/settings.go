package settings

// WritingStyle selects the refinement directive applied to transcripts.
type WritingStyle string

const (
	// StyleProfessional polishes transcripts into formal prose.
	StyleProfessional WritingStyle = "professional"
	// StyleCasual keeps transcripts conversational.
	StyleCasual WritingStyle = "casual"
	// StyleTechnical preserves terminology and precision.
	StyleTechnical WritingStyle = "technical"
)

// Valid reports whether s is a known writing style.
func (s WritingStyle) Valid() bool {
	switch s {
	case StyleProfessional, StyleCasual, StyleTechnical:
		return true
	}
	return false
}

// Refinement bundles everything the refinement stage needs in one read.
type Refinement struct {
	// APIKey is the LLM API key; empty when unset.
	APIKey string
	// Style is the preferred writing style; empty when unset.
	Style WritingStyle
}

// Configured reports whether refinement should run at all.
func (r Refinement) Configured() bool {
	return r.APIKey != "" && r.Style.Valid()
}

// Store is the settings collaborator. Implementations never error for
// unset values.
type Store interface {
	// ASRKey returns the ASR API key, empty when unset.
	ASRKey() string
	// SetASRKey stores the ASR API key.
	SetASRKey(key string)

	// LLMKey returns the LLM API key, empty when unset.
	LLMKey() string
	// SetLLMKey stores the LLM API key.
	SetLLMKey(key string)

	// Style returns the writing style preference, empty when unset.
	Style() WritingStyle
	// SetStyle stores the writing style preference.
	SetStyle(style WritingStyle)

	// Refinement returns all refinement-related settings in one call.
	Refinement() Refinement
}

package refine

import "github.com/kbukum/dictate/settings"

// message is a single chat message of the completion request.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// completionRequest is the body of the completion endpoint.
type completionRequest struct {
	// Model selects the text-generation model.
	Model string `json:"model"`
	// MaxTokens fixes the maximum output length.
	MaxTokens int `json:"max_tokens"`
	// Temperature is kept low for near-deterministic output.
	Temperature float64 `json:"temperature"`
	// System carries the style-specific directive.
	System string `json:"system"`
	// Messages wraps the raw transcript as a single user message.
	Messages []message `json:"messages"`
}

// contentBlock is one block of the generated response.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// completionResponse is the body returned by the completion endpoint.
type completionResponse struct {
	Content []contentBlock `json:"content"`
}

// directives maps each writing style to its system directive.
var directives = map[settings.WritingStyle]string{
	settings.StyleProfessional: "You polish dictated text into clear, formal prose. " +
		"Fix grammar, punctuation and filler words. Preserve the speaker's meaning exactly. " +
		"Return only the polished text with no commentary.",
	settings.StyleCasual: "You lightly clean up dictated text while keeping its conversational tone. " +
		"Fix obvious speech artifacts and punctuation. Preserve the speaker's meaning exactly. " +
		"Return only the cleaned text with no commentary.",
	settings.StyleTechnical: "You polish dictated technical text. Preserve all terminology, identifiers " +
		"and numbers verbatim while fixing grammar and punctuation. Preserve the speaker's meaning exactly. " +
		"Return only the polished text with no commentary.",
}

// directiveFor returns the system directive for style, defaulting to the
// professional directive for unknown values.
func directiveFor(style settings.WritingStyle) string {
	if d, ok := directives[style]; ok {
		return d
	}
	return directives[settings.StyleProfessional]
}

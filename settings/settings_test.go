package settings

import (
	"testing"
)

func TestWritingStyle_Valid(t *testing.T) {
	tests := []struct {
		style WritingStyle
		want  bool
	}{
		{StyleProfessional, true},
		{StyleCasual, true},
		{StyleTechnical, true},
		{"", false},
		{"poetic", false},
	}

	for _, tt := range tests {
		if got := tt.style.Valid(); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.style, got, tt.want)
		}
	}
}

func TestRefinement_Configured(t *testing.T) {
	if (Refinement{}).Configured() {
		t.Error("empty refinement must not be configured")
	}
	if (Refinement{APIKey: "k"}).Configured() {
		t.Error("refinement without style must not be configured")
	}
	if (Refinement{Style: StyleCasual}).Configured() {
		t.Error("refinement without key must not be configured")
	}
	if !(Refinement{APIKey: "k", Style: StyleCasual}).Configured() {
		t.Error("key + valid style should be configured")
	}
}

func TestMemoryStore_UnsetReturnsZeroValues(t *testing.T) {
	s := NewMemoryStore()
	if s.ASRKey() != "" || s.LLMKey() != "" || s.Style() != "" {
		t.Error("unset values must read back as zero values")
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	s.SetASRKey("asr-1")
	s.SetLLMKey("llm-1")
	s.SetStyle(StyleTechnical)

	if s.ASRKey() != "asr-1" {
		t.Errorf("ASRKey() = %q", s.ASRKey())
	}
	r := s.Refinement()
	if r.APIKey != "llm-1" || r.Style != StyleTechnical {
		t.Errorf("Refinement() = %+v", r)
	}
	if !r.Configured() {
		t.Error("expected refinement configured")
	}
}

func TestEnvStore_ReadsEnvironment(t *testing.T) {
	t.Setenv("DICTATE_ASR_API_KEY", "env-asr")
	t.Setenv("DICTATE_WRITING_STYLE", "Casual")

	s := NewEnvStore("")
	if s.ASRKey() != "env-asr" {
		t.Errorf("ASRKey() = %q", s.ASRKey())
	}
	if s.Style() != StyleCasual {
		t.Errorf("Style() = %q, want casual (case-insensitive)", s.Style())
	}
}

func TestEnvStore_UnknownStyleReadsAsUnset(t *testing.T) {
	t.Setenv("DICTATE_WRITING_STYLE", "shakespearean")

	s := NewEnvStore("")
	if s.Style() != "" {
		t.Errorf("expected unknown style to read as unset, got %q", s.Style())
	}
	if s.Refinement().Configured() {
		t.Error("invalid style must not enable refinement")
	}
}

func TestEnvStore_SetOverridesEnv(t *testing.T) {
	t.Setenv("DICTATE_LLM_API_KEY", "from-env")

	s := NewEnvStore("")
	s.SetLLMKey("overridden")
	if s.LLMKey() != "overridden" {
		t.Errorf("LLMKey() = %q, want overridden", s.LLMKey())
	}
}

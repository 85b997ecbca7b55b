package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const minimalYAML = `
transcription:
  base_url: https://asr.example.com/v1
  version: model-v1
refinement:
  base_url: https://llm.example.com
  model: refine-model
`

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_FileWithDefaults(t *testing.T) {
	cfg, err := Load(WithConfigFile(writeConfigFile(t, minimalYAML)))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Transcription.BaseURL != "https://asr.example.com/v1" {
		t.Errorf("base_url = %q", cfg.Transcription.BaseURL)
	}
	if cfg.Transcription.MaxPollAttempts != 60 {
		t.Errorf("max_poll_attempts default = %d, want 60", cfg.Transcription.MaxPollAttempts)
	}
	if cfg.Capture.MIMEType != "audio/webm;codecs=opus" {
		t.Errorf("capture mime default = %q", cfg.Capture.MIMEType)
	}
	if cfg.Refinement.MaxTokens != 1024 {
		t.Errorf("max_tokens default = %d, want 1024", cfg.Refinement.MaxTokens)
	}
	if cfg.KeepaliveInterval != 20*time.Second {
		t.Errorf("keepalive_interval default = %s", cfg.KeepaliveInterval)
	}
	if cfg.Environment != "development" || !cfg.Debug {
		t.Errorf("environment/debug defaults = %q/%v", cfg.Environment, cfg.Debug)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("DICTATE_TRANSCRIPTION_BASE_URL", "https://override.example.com")
	t.Setenv("DICTATE_REFINEMENT_MODEL", "other-model")

	cfg, err := Load(WithConfigFile(writeConfigFile(t, minimalYAML)))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Transcription.BaseURL != "https://override.example.com" {
		t.Errorf("base_url = %q, want env override", cfg.Transcription.BaseURL)
	}
	if cfg.Refinement.Model != "other-model" {
		t.Errorf("model = %q, want env override", cfg.Refinement.Model)
	}
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	_, err := Load(WithConfigFile(writeConfigFile(t, "name: dictate\n")))
	if err == nil {
		t.Fatal("expected validation error for missing transcription/refinement settings")
	}
	if !strings.Contains(err.Error(), "base_url") {
		t.Errorf("error should name the missing field, got: %v", err)
	}
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	_, err := Load(WithConfigFile(writeConfigFile(t, minimalYAML+"environment: prod\n")))
	if err == nil {
		t.Fatal("expected validation error for unknown environment")
	}
}

func TestEnvKeyVariants(t *testing.T) {
	variants := envKeyVariants("TRANSCRIPTION_BASE_URL")

	want := map[string]bool{
		"transcription.base_url": false,
		"transcription.base.url": false,
	}
	for _, v := range variants {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for k, found := range want {
		if !found {
			t.Errorf("variant %q missing from %v", k, variants)
		}
	}
}

func TestFindFile(t *testing.T) {
	fs := fakeFS{"./config/config.yml": true}
	if got := findFile(fs, "config.yml"); got != "./config/config.yml" {
		t.Errorf("findFile = %q", got)
	}
	if got := findFile(fakeFS{}, "config.yml"); got != "" {
		t.Errorf("findFile on empty fs = %q, want empty", got)
	}
}

type fakeFS map[string]bool

func (f fakeFS) Exists(path string) bool { return f[path] }
func (f fakeFS) LoadEnv(string) error    { return nil }

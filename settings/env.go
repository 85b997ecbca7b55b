package settings

import (
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variable keys read by EnvStore, after the DICTATE_ prefix.
const (
	envASRKey = "asr_api_key"
	envLLMKey = "llm_api_key"
	envStyle  = "writing_style"
)

// EnvStore reads settings from the environment (optionally seeded from a
// .env file) via viper. Writes update the in-process view only; durable
// persistence belongs to the host.
type EnvStore struct {
	mu sync.RWMutex
	v  *viper.Viper
}

// NewEnvStore creates a store over DICTATE_-prefixed environment variables.
// envFile, when non-empty, is loaded first; a missing file is not an error.
func NewEnvStore(envFile string) *EnvStore {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	v := viper.New()
	v.SetEnvPrefix("dictate")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &EnvStore{v: v}
}

// ASRKey returns the ASR API key, empty when unset.
func (s *EnvStore) ASRKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.GetString(envASRKey)
}

// SetASRKey stores the ASR API key in the in-process view.
func (s *EnvStore) SetASRKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(envASRKey, key)
}

// LLMKey returns the LLM API key, empty when unset.
func (s *EnvStore) LLMKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.GetString(envLLMKey)
}

// SetLLMKey stores the LLM API key in the in-process view.
func (s *EnvStore) SetLLMKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(envLLMKey, key)
}

// Style returns the writing style preference. Unknown values read back as
// unset rather than erroring.
func (s *EnvStore) Style() WritingStyle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	style := WritingStyle(strings.ToLower(s.v.GetString(envStyle)))
	if !style.Valid() {
		return ""
	}
	return style
}

// SetStyle stores the writing style preference in the in-process view.
func (s *EnvStore) SetStyle(style WritingStyle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(envStyle, string(style))
}

// Refinement returns all refinement-related settings in one call.
func (s *EnvStore) Refinement() Refinement {
	return Refinement{APIKey: s.LLMKey(), Style: s.Style()}
}

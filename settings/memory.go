package settings

import "sync"

// MemoryStore is an in-memory Store. It backs tests and hosts that manage
// persistence themselves.
type MemoryStore struct {
	mu     sync.RWMutex
	asrKey string
	llmKey string
	style  WritingStyle
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// ASRKey returns the ASR API key, empty when unset.
func (s *MemoryStore) ASRKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.asrKey
}

// SetASRKey stores the ASR API key.
func (s *MemoryStore) SetASRKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asrKey = key
}

// LLMKey returns the LLM API key, empty when unset.
func (s *MemoryStore) LLMKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.llmKey
}

// SetLLMKey stores the LLM API key.
func (s *MemoryStore) SetLLMKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.llmKey = key
}

// Style returns the writing style preference, empty when unset.
func (s *MemoryStore) Style() WritingStyle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.style
}

// SetStyle stores the writing style preference.
func (s *MemoryStore) SetStyle(style WritingStyle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style = style
}

// Refinement returns all refinement-related settings in one call.
func (s *MemoryStore) Refinement() Refinement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Refinement{APIKey: s.llmKey, Style: s.style}
}

package capture

import (
	"fmt"
	"strings"
	"time"
)

// AudioBuffer is an opaque encoded audio byte sequence with its codec tag.
// It lives only for the duration of one pipeline run and is never persisted.
type AudioBuffer struct {
	// Data is the encoded audio.
	Data []byte
	// MIMEType tags the encoding (e.g. "audio/webm;codecs=opus").
	MIMEType string
}

// Constraints is the fixed constraint set for microphone acquisition,
// chosen to match the downstream ASR model's optimal input.
type Constraints struct {
	// Channels is the channel count.
	Channels int
	// SampleRate is the sample rate in Hz.
	SampleRate int
	// EchoCancellation enables echo cancellation.
	EchoCancellation bool
	// NoiseSuppression enables noise suppression.
	NoiseSuppression bool
}

// DefaultConstraints returns the constraint set used for dictation:
// mono 16 kHz with echo cancellation and noise suppression.
func DefaultConstraints() Constraints {
	return Constraints{
		Channels:         1,
		SampleRate:       16000,
		EchoCancellation: true,
		NoiseSuppression: true,
	}
}

// Config configures the capture surface.
type Config struct {
	// MIMEType is the required encoding.
	MIMEType string `yaml:"mime_type" mapstructure:"mime_type"`

	// BitsPerSecond is the target encoder bitrate, also used to estimate
	// the expected output size on stop.
	BitsPerSecond int `yaml:"bits_per_second" mapstructure:"bits_per_second"`

	// FlushInterval is the fixed interval at which the encoder is asked to
	// flush. Kept short: flushing only on natural buffer boundaries risks
	// silent data loss in long recordings.
	FlushInterval time.Duration `yaml:"flush_interval" mapstructure:"flush_interval"`

	// MinBytes is the absolute floor below which collected output is
	// flagged as likely data loss.
	MinBytes int `yaml:"min_bytes" mapstructure:"min_bytes"`

	// MinExpectedFraction flags output smaller than this fraction of
	// duration x bitrate.
	MinExpectedFraction float64 `yaml:"min_expected_fraction" mapstructure:"min_expected_fraction"`
}

// ApplyDefaults sets default values for unset config fields.
func (c *Config) ApplyDefaults() {
	if c.MIMEType == "" {
		c.MIMEType = "audio/webm;codecs=opus"
	}
	if c.BitsPerSecond == 0 {
		c.BitsPerSecond = 32000
	}
	if c.FlushInterval == 0 {
		c.FlushInterval = time.Second
	}
	if c.MinBytes == 0 {
		c.MinBytes = 1024
	}
	if c.MinExpectedFraction == 0 {
		c.MinExpectedFraction = 0.5
	}
}

// Validate validates the capture configuration.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.MIMEType, "audio/") {
		return fmt.Errorf("mime_type must be an audio type (got: %s)", c.MIMEType)
	}
	if c.BitsPerSecond <= 0 {
		return fmt.Errorf("bits_per_second must be positive (got: %d)", c.BitsPerSecond)
	}
	if c.FlushInterval <= 0 {
		return fmt.Errorf("flush_interval must be positive (got: %s)", c.FlushInterval)
	}
	if c.MinExpectedFraction <= 0 || c.MinExpectedFraction > 1 {
		return fmt.Errorf("min_expected_fraction must be in (0, 1] (got: %g)", c.MinExpectedFraction)
	}
	return nil
}

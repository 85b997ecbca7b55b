package config

import (
	"fmt"
	"time"

	"github.com/kbukum/dictate/capture"
	"github.com/kbukum/dictate/logger"
	"github.com/kbukum/dictate/refine"
	"github.com/kbukum/dictate/transcription"
)

// Config is the full pipeline configuration.
type Config struct {
	// Name tags log output.
	Name string `yaml:"name" mapstructure:"name"`
	// Environment selects runtime behavior.
	Environment string `yaml:"environment" mapstructure:"environment" validate:"omitempty,oneof=development staging production"`
	// Debug enables verbose logging regardless of Logging.Level.
	Debug bool `yaml:"debug" mapstructure:"debug"`

	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Capture       capture.Config       `yaml:"capture" mapstructure:"capture"`
	Transcription transcription.Config `yaml:"transcription" mapstructure:"transcription"`
	Refinement    refine.Config        `yaml:"refinement" mapstructure:"refinement"`

	// KeepaliveInterval paces the recording keepalive pings.
	KeepaliveInterval time.Duration `yaml:"keepalive_interval" mapstructure:"keepalive_interval"`
}

// ApplyDefaults fills in defaults for every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "dictate"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.KeepaliveInterval <= 0 {
		c.KeepaliveInterval = 20 * time.Second
	}

	c.Logging.ApplyDefaults()
	if c.Debug {
		c.Logging.Level = "debug"
	}
	c.Capture.ApplyDefaults()
	c.Transcription.ApplyDefaults()
	c.Refinement.ApplyDefaults()
}

// Validate checks the whole configuration. Struct tags are enforced first,
// then each section's own Validate.
func (c *Config) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Capture.Validate(); err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	if err := c.Transcription.Validate(); err != nil {
		return fmt.Errorf("transcription: %w", err)
	}
	if err := c.Refinement.Validate(); err != nil {
		return fmt.Errorf("refinement: %w", err)
	}
	return nil
}

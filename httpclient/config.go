package httpclient

import (
	"fmt"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Config configures the HTTP client.
type Config struct {
	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds every request independently of any polling budget.
	// A hung connection is aborted, never silently waited on. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are sent with every request.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Auth configures request authentication.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults sets default values for unset config fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks the configuration for hard errors.
func (c *Config) Validate() error {
	if c.BaseURL != "" && !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("httpclient: base_url must be an http(s) URL (got: %s)", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("httpclient: timeout must be positive (got: %s)", c.Timeout)
	}
	return nil
}

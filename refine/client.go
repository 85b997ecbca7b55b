package refine

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kbukum/dictate/errors"
	"github.com/kbukum/dictate/httpclient"
	"github.com/kbukum/dictate/logger"
	"github.com/kbukum/dictate/settings"
)

const serviceName = "refinement"

// Config configures the refinement client.
type Config struct {
	// BaseURL is the LLM service base URL.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// Model selects the text-generation model.
	Model string `yaml:"model" mapstructure:"model" validate:"required"`

	// MaxTokens fixes the maximum output length.
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens" validate:"omitempty,min=1"`

	// Temperature is the sampling temperature, kept low.
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`

	// RequestTimeout bounds the completion request.
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`

	// APIVersion is sent as the service's version header.
	APIVersion string `yaml:"api_version" mapstructure:"api_version"`
}

// ApplyDefaults sets default values for unset config fields.
func (c *Config) ApplyDefaults() {
	if c.MaxTokens == 0 {
		c.MaxTokens = 1024
	}
	if c.Temperature == 0 {
		c.Temperature = 0.2
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.APIVersion == "" {
		c.APIVersion = "2023-06-01"
	}
}

// Validate validates the refinement configuration.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("max_tokens must be at least 1 (got: %d)", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature must be in [0, 1] (got: %g)", c.Temperature)
	}
	return nil
}

// Client talks to the remote LLM service.
type Client struct {
	cfg  Config
	http *httpclient.Client
	log  *logger.Logger
}

// New creates a refinement client authenticated with apiKey.
func New(cfg Config, apiKey string, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}

	hc, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.RequestTimeout,
		Headers: map[string]string{"anthropic-version": cfg.APIVersion},
		Auth:    httpclient.APIKeyAuthHeader(apiKey, "x-api-key"),
	})
	if err != nil {
		return nil, fmt.Errorf("refine: %w", err)
	}

	return &Client{
		cfg:  cfg,
		http: hc,
		log:  log.WithComponent(serviceName),
	}, nil
}

// Refine polishes text according to the writing style and returns the
// refined version. Errors here are recoverable: callers fall back to the
// original text.
func (c *Client) Refine(ctx context.Context, text string, style settings.WritingStyle) (string, error) {
	body := completionRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		System:      directiveFor(style),
		Messages: []message{
			{Role: "user", Content: "Dictated text:\n\n" + text},
		},
	}

	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/v1/messages",
		Body:   body,
	})
	if err != nil {
		return "", mapTransportError(err)
	}

	var completion completionResponse
	if err := resp.JSON(&completion); err != nil {
		return "", errors.Internal(fmt.Errorf("refine: decode response: %w", err))
	}

	refined := firstText(completion)
	if refined == "" {
		return "", errors.EmptyResult(serviceName)
	}

	c.log.Debug("transcript refined", logger.Fields(
		logger.FieldBytes, len(refined),
		"style", string(style),
	))
	return refined, nil
}

// firstText returns the first text content block, trimmed.
func firstText(resp completionResponse) string {
	for _, block := range resp.Content {
		if block.Type == "text" {
			return strings.TrimSpace(block.Text)
		}
	}
	return ""
}

// mapTransportError converts httpclient errors to the application taxonomy.
func mapTransportError(err error) error {
	switch {
	case httpclient.IsAuth(err):
		return errors.Auth(serviceName).WithCause(err)
	case httpclient.IsRateLimit(err):
		return errors.RateLimited(serviceName).WithCause(err)
	case httpclient.IsTimeout(err):
		return errors.Timeout(serviceName).WithCause(err)
	default:
		return errors.Internal(err)
	}
}

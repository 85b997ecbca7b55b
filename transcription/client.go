package transcription

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kbukum/dictate/capture"
	"github.com/kbukum/dictate/errors"
	"github.com/kbukum/dictate/httpclient"
	"github.com/kbukum/dictate/logger"
)

const serviceName = "transcription"

// Config configures the transcription client.
type Config struct {
	// BaseURL is the ASR service base URL.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// Version identifies the model to run.
	Version string `yaml:"version" mapstructure:"version" validate:"required"`

	// Language pins the expected language of the audio.
	Language string `yaml:"language" mapstructure:"language"`

	// PollInterval is the fixed sleep between status polls.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`

	// MaxPollAttempts bounds the number of status polls.
	MaxPollAttempts int `yaml:"max_poll_attempts" mapstructure:"max_poll_attempts" validate:"omitempty,min=1"`

	// RequestTimeout bounds each individual network call, independent of
	// the polling budget.
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
}

// ApplyDefaults sets default values for unset config fields.
func (c *Config) ApplyDefaults() {
	if c.Language == "" {
		c.Language = "en"
	}
	if c.PollInterval == 0 {
		c.PollInterval = time.Second
	}
	if c.MaxPollAttempts == 0 {
		c.MaxPollAttempts = 60
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 15 * time.Second
	}
}

// Validate validates the transcription configuration.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.Version == "" {
		return fmt.Errorf("version is required")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive (got: %s)", c.PollInterval)
	}
	if c.MaxPollAttempts < 1 {
		return fmt.Errorf("max_poll_attempts must be at least 1 (got: %d)", c.MaxPollAttempts)
	}
	return nil
}

// Client talks to the remote ASR service.
type Client struct {
	cfg  Config
	http *httpclient.Client
	log  *logger.Logger
}

// New creates a transcription client authenticated with apiKey.
func New(cfg Config, apiKey string, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}

	hc, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.RequestTimeout,
		Auth:    httpclient.BearerAuth(apiKey),
	})
	if err != nil {
		return nil, fmt.Errorf("transcription: %w", err)
	}

	return &Client{
		cfg:  cfg,
		http: hc,
		log:  log.WithComponent(serviceName),
	}, nil
}

// Transcribe submits the audio and polls until the transcript is available.
func (c *Client) Transcribe(ctx context.Context, audio capture.AudioBuffer) (string, error) {
	pred, err := c.create(ctx, audio)
	if err != nil {
		return "", err
	}

	c.log.Debug("prediction created", logger.Fields(
		"prediction_id", pred.ID,
		logger.FieldStatus, string(pred.Status),
	))

	if pred.Status.Terminal() {
		return c.finish(pred)
	}

	for attempt := 1; attempt <= c.cfg.MaxPollAttempts; attempt++ {
		if err := sleep(ctx, c.cfg.PollInterval); err != nil {
			return "", errors.Timeout(serviceName).WithCause(err)
		}

		pred, err = c.poll(ctx, pred.ID)
		if err != nil {
			return "", err
		}

		if pred.Status.Terminal() {
			c.log.Debug("prediction finished", logger.Fields(
				"prediction_id", pred.ID,
				logger.FieldStatus, string(pred.Status),
				logger.FieldAttempt, attempt,
			))
			return c.finish(pred)
		}
	}

	return "", errors.Timeout(serviceName).WithDetail("attempts", c.cfg.MaxPollAttempts)
}

// create submits the prediction creation request.
func (c *Client) create(ctx context.Context, audio capture.AudioBuffer) (*prediction, error) {
	body := createRequest{
		Version: c.cfg.Version,
		Input: predictionInput{
			Audio:       dataURI(audio),
			Language:    c.cfg.Language,
			Temperature: 0,
			Translate:   false,
		},
	}

	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/predictions",
		Body:   body,
	})
	if err != nil {
		return nil, mapTransportError(err)
	}

	var pred prediction
	if err := resp.JSON(&pred); err != nil {
		return nil, errors.Internal(fmt.Errorf("transcription: decode create response: %w", err))
	}
	if pred.ID == "" {
		return nil, errors.Internal(fmt.Errorf("transcription: create response missing prediction id"))
	}
	return &pred, nil
}

// poll fetches the prediction's current status.
func (c *Client) poll(ctx context.Context, id string) (*prediction, error) {
	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   "/predictions/" + id,
	})
	if err != nil {
		return nil, mapTransportError(err)
	}

	var pred prediction
	if err := resp.JSON(&pred); err != nil {
		return nil, errors.Internal(fmt.Errorf("transcription: decode status response: %w", err))
	}
	return &pred, nil
}

// finish maps a terminal prediction to a transcript or an error.
func (c *Client) finish(pred *prediction) (string, error) {
	switch pred.Status {
	case StatusSucceeded:
		text := strings.TrimSpace(pred.Output)
		if text == "" {
			return "", errors.EmptyResult(serviceName)
		}
		return text, nil
	case StatusCanceled:
		return "", errors.Remote(serviceName, "prediction canceled")
	default:
		return "", errors.Remote(serviceName, pred.Error)
	}
}

// dataURI encodes the audio for transport.
func dataURI(audio capture.AudioBuffer) string {
	return "data:" + audio.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(audio.Data)
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

// sleep waits d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

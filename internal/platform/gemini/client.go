package gemini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/vidoc/vidoc-api/internal/config"
	"github.com/vidoc/vidoc-api/internal/generation"
)

// uploadURLHeader carries the continuation URL in the initiation response.
const uploadURLHeader = "X-Goog-Upload-Url"

// Client implements generation.Generator against the vendor REST API.
type Client struct {
	// logger is used for structured logging
	logger *slog.Logger

	// cfg contains vendor-specific configuration
	cfg config.LLMConfig

	// retryWaitMin and retryWaitMax bound the session's retry backoff.
	// Derived from the configured base delay; tests shrink them to keep the
	// retry paths fast.
	retryWaitMin time.Duration
	retryWaitMax time.Duration

	// sleep paces the polling loop. Tests replace it to drive the loop
	// without wall-clock delay.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a new Client with the provided dependencies.
//
// Returns a properly initialized Client or an error if the configuration is
// incomplete.
func NewClient(logger *slog.Logger, cfg config.LLMConfig) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.UploadBaseURL == "" || cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("%w: vendor base URLs cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.PollIntervalSeconds < 1 || cfg.PollMaxAttempts < 1 {
		return nil, fmt.Errorf("%w: polling cadence must be positive", generation.ErrInvalidConfig)
	}

	baseDelay := time.Duration(cfg.RetryBaseDelaySeconds) * time.Second
	return &Client{
		logger:       logger,
		cfg:          cfg,
		retryWaitMin: baseDelay,
		retryWaitMax: 8 * baseDelay,
		sleep:        sleepContext,
	}, nil
}

// DocumentFromVideo runs the full upload-and-generate sequence: initiate the
// resumable upload, stream the staged file, wait for remote processing, then
// request the documentation pass. One retrying session serves the whole
// sequence, so concurrent requests never share transport state.
func (c *Client) DocumentFromVideo(ctx context.Context, src generation.VideoSource) (string, error) {
	session := c.newSession()
	defer session.HTTPClient.CloseIdleConnections()

	uploadURL, err := c.startUpload(ctx, session, src)
	if err != nil {
		return "", err
	}

	remote, err := c.uploadBytes(ctx, session, uploadURL, src)
	if err != nil {
		return "", err
	}

	if err := c.waitForActive(ctx, session, remote.Name); err != nil {
		return "", err
	}

	return c.generate(ctx, session, src.MIMEType, remote.URI)
}

// newSession builds the retrying HTTP client used for one full sequence.
// Retries are restricted to transport errors and the transient gateway
// statuses 502, 503 and 504, so genuine client errors surface immediately.
func (c *Client) newSession() *retryablehttp.Client {
	session := retryablehttp.NewClient()
	session.RetryMax = c.cfg.MaxRetries
	session.RetryWaitMin = c.retryWaitMin
	session.RetryWaitMax = c.retryWaitMax
	session.Logger = nil
	session.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if err != nil {
			return true, nil
		}
		switch resp.StatusCode {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true, nil
		}
		return false, nil
	}
	return session
}

func (c *Client) requestTimeout() time.Duration {
	return time.Duration(c.cfg.RequestTimeoutSeconds) * time.Second
}

func (c *Client) uploadTimeout() time.Duration {
	return time.Duration(c.cfg.UploadTimeoutSeconds) * time.Second
}

// checkStatus converts a non-2xx response into an ErrUploadFailed-wrapped
// error carrying the status code and a bounded excerpt of the body.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%w: %s %s returned %d: %s",
		generation.ErrUploadFailed,
		resp.Request.Method,
		resp.Request.URL.Path,
		resp.StatusCode,
		strings.TrimSpace(string(excerpt)))
}

// closeBody closes a response body, logging rather than surfacing failures;
// by the time it runs the call outcome is already decided.
func (c *Client) closeBody(body io.Closer) {
	if err := body.Close(); err != nil {
		c.logger.Warn("failed to close response body", "error", err)
	}
}

// sleepContext waits for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

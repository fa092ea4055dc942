// Package httpclient provides an HTTP client with retry, rate limiting, proxy and timeout support.
package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/net/http/httpproxy"
	"golang.org/x/time/rate"

	"sentimeter/internal/platform/errors"
	"sentimeter/internal/platform/logx"
)

// maxBodyBytes caps how much of a response body is read into memory.
const maxBodyBytes = 4 << 20

// maxErrorBodyBytes caps the body kept in a StatusError.
const maxErrorBodyBytes = 4 << 10

// Client is an HTTP client with retry logic, rate limiting, and timeout support.
// It is safe for concurrent use.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      logx.Logger
	config      Config
}

// Config holds the configuration for the HTTP client.
type Config struct {
	// Timeout is the per-attempt request timeout.
	// Default: 30 seconds
	Timeout time.Duration

	// MaxRetries is the maximum number of retry attempts after the first.
	// Default: 0
	MaxRetries int

	// RetryBackoff is the initial backoff duration for retries.
	// Backoff doubles with each retry.
	// Default: 500 milliseconds
	RetryBackoff time.Duration

	// MaxRetryBackoff is the maximum backoff duration between retries.
	// Default: 10 seconds
	MaxRetryBackoff time.Duration

	// UserAgent is the User-Agent header value.
	// Default: "sentimeter/1.0"
	UserAgent string

	// RateLimit is the maximum requests per second.
	// 0 means no rate limiting.
	RateLimit float64

	// RateLimitBurst is the burst size for rate limiting.
	// Default: 1
	RateLimitBurst int

	// ProxyURL forces every request through this proxy.
	// Empty means the standard HTTP_PROXY/HTTPS_PROXY/NO_PROXY variables apply.
	ProxyURL string

	// NoProxy lists hosts that bypass the proxy, in NO_PROXY syntax.
	NoProxy string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:         30 * time.Second,
		MaxRetries:      0,
		RetryBackoff:    500 * time.Millisecond,
		MaxRetryBackoff: 10 * time.Second,
		UserAgent:       "sentimeter/1.0",
		RateLimit:       0,
		RateLimitBurst:  1,
	}
}

// StatusError is returned when a response has a non-2xx status. It unwraps
// to the sentinel CheckStatus picks for the code, and keeps the head of the
// body so callers can surface the server's own message.
type StatusError struct {
	Code int
	Body []byte
	Err  error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %v", e.Code, e.Err)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// New creates a new HTTP client with the given configuration.
func New(config Config, logger logx.Logger) *Client {
	// Apply defaults for zero values
	def := DefaultConfig()
	if config.Timeout <= 0 {
		config.Timeout = def.Timeout
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.RetryBackoff <= 0 {
		config.RetryBackoff = def.RetryBackoff
	}
	if config.MaxRetryBackoff < config.RetryBackoff {
		config.MaxRetryBackoff = max(def.MaxRetryBackoff, config.RetryBackoff)
	}
	if config.UserAgent == "" {
		config.UserAgent = def.UserAgent
	}
	if config.RateLimitBurst <= 0 {
		config.RateLimitBurst = 1
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = proxyFunc(config)

	var rateLimiter *rate.Limiter
	if config.RateLimit > 0 {
		rateLimiter = rate.NewLimiter(rate.Limit(config.RateLimit), config.RateLimitBurst)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
		},
		rateLimiter: rateLimiter,
		logger:      logger.With("component", "httpclient"),
		config:      config,
	}
}

// proxyFunc builds the transport's proxy selector. An explicit ProxyURL
// applies to both schemes; otherwise the environment decides.
func proxyFunc(config Config) func(*http.Request) (*url.URL, error) {
	pc := httpproxy.FromEnvironment()
	if config.ProxyURL != "" {
		pc.HTTPProxy = config.ProxyURL
		pc.HTTPSProxy = config.ProxyURL
	}
	if config.NoProxy != "" {
		pc.NoProxy = config.NoProxy
	}

	fn := pc.ProxyFunc()
	return func(req *http.Request) (*url.URL, error) {
		return fn(req.URL)
	}
}

func (c *Client) backoff() retry.Backoff {
	b := retry.NewExponential(c.config.RetryBackoff)
	b = retry.WithCappedDuration(c.config.MaxRetryBackoff, b)
	return retry.WithMaxRetries(uint64(c.config.MaxRetries), b)
}

// Request performs an HTTP request with retry logic and rate limiting.
// The body is a byte slice so it can be replayed on every attempt.
//
// Network errors and 429/502/503/504 responses are retried. Once retries
// are exhausted on a retryable status, the error is a *StatusError. Any
// other response, including 4xx, is returned to the caller unchanged.
func (c *Client) Request(ctx context.Context, method, url string, body []byte, headers map[string]string) (*http.Response, error) {
	attempt := 0

	resp, err := retry.DoValue(ctx, c.backoff(), func(ctx context.Context) (*http.Response, error) {
		attempt++

		// Rate limiting
		if c.rateLimiter != nil {
			if err := c.rateLimiter.Wait(ctx); err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				return nil, errors.Wrap(errors.ErrRateLimit, err.Error())
			}
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		// Create request
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create request for %s %s", method, url)
		}

		// Set headers
		req.Header.Set("User-Agent", c.config.UserAgent)
		for key, value := range headers {
			req.Header.Set(key, value)
		}

		c.logger.Debug("HTTP request",
			"method", method,
			"url", url,
			"attempt", attempt,
			"max_attempts", c.config.MaxRetries+1,
		)

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		duration := time.Since(start)

		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warn("HTTP request failed",
				"method", method,
				"url", url,
				"attempt", attempt,
				"error", err.Error(),
				"duration_ms", duration.Milliseconds(),
			)
			return nil, retry.RetryableError(err)
		}

		c.logger.Debug("HTTP response received",
			"method", method,
			"url", url,
			"status", resp.StatusCode,
			"duration_ms", duration.Milliseconds(),
		)

		if !isRetryableStatus(resp.StatusCode) {
			return resp, nil
		}

		statusErr := NewStatusError(resp)
		c.logger.Warn("HTTP request returned retryable status",
			"method", method,
			"url", url,
			"status", resp.StatusCode,
			"attempt", attempt,
		)
		return nil, retry.RetryableError(statusErr)
	})
	if err != nil {
		if errors.IsCanceled(err) || errors.IsTimeout(err) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "request failed after %d attempts", attempt)
	}

	return resp, nil
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, url string, body []byte, headers map[string]string) (*http.Response, error) {
	return c.Request(ctx, http.MethodPost, url, body, headers)
}

// PostJSON is a convenience method for POST requests with a JSON body.
// Extra headers (e.g. Authorization) are merged over the JSON ones.
func (c *Client) PostJSON(ctx context.Context, url string, body []byte, extra map[string]string) (*http.Response, error) {
	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
	for k, v := range extra {
		headers[k] = v
	}
	return c.Post(ctx, url, body, headers)
}

// isRetryableStatus checks if an HTTP status code should trigger a retry.
func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, // 429
		http.StatusBadGateway,         // 502
		http.StatusServiceUnavailable, // 503
		http.StatusGatewayTimeout:     // 504
		return true
	default:
		return false
	}
}

// ReadBody reads the response body and closes it.
// This is a convenience method to ensure the body is always closed.
func ReadBody(resp *http.Response) ([]byte, error) {
	if resp == nil {
		return nil, errors.New("response is nil")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	return body, nil
}

// CheckStatus validates the HTTP status code and returns an error if it's not successful.
func CheckStatus(resp *http.Response) error {
	if resp == nil {
		return errors.New("response is nil")
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return errors.ErrInvalidResponse
	case http.StatusTooManyRequests:
		return errors.ErrRateLimit
	case http.StatusNotFound:
		return errors.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.ErrUnauthorized
	case http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusBadGateway:
		return errors.ErrServiceUnavailable
	default:
		return errors.Errorf("unexpected status %s", strings.TrimSpace(resp.Status))
	}
}

// NewStatusError consumes and closes the body of a non-2xx response.
func NewStatusError(resp *http.Response) *StatusError {
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return &StatusError{
		Code: resp.StatusCode,
		Body: body,
		Err:  CheckStatus(resp),
	}
}

// String returns a human-readable representation of the client configuration.
func (c *Client) String() string {
	return fmt.Sprintf("HTTPClient{timeout=%s, max_retries=%d, rate_limit=%.1f/s}",
		c.config.Timeout,
		c.config.MaxRetries,
		c.config.RateLimit,
	)
}

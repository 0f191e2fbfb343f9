// Package fetch provides the retry-wrapped HTTP GET used by every search
// adapter. Rate-limited (429) and transport-failed requests are retried with
// exponential backoff until the attempt budget runs out; exhaustion surfaces
// as a sentinel error, never a panic.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// ErrExhausted is returned after the retry budget is spent without a usable
// response. Callers check with errors.Is and treat it as "no data".
var ErrExhausted = errors.New("request failed after all retry attempts")

// Client performs JSON GETs with bounded exponential backoff. The sleep
// function is injectable so the backoff schedule can be asserted in tests
// without real delays.
type Client struct {
	http       *http.Client
	maxRetries int
	baseDelay  time.Duration
	sleep      func(time.Duration)
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (for tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithSleep replaces the backoff sleep function (for tests).
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *Client) { c.sleep = sleep }
}

// New creates a fetcher. maxRetries bounds the total number of attempts;
// the delay before attempt n+1 is baseDelay * 2^n. No jitter, no circuit
// breaker, no state carried across calls.
func New(maxRetries int, baseDelay, timeout time.Duration, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		http: &http.Client{
			Timeout: timeout,
		},
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		sleep:      time.Sleep,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON issues a GET to rawURL with the given query parameters and decodes
// the JSON response body into out.
//
// Retry policy, per attempt:
//   - 429: log, back off, retry — not an error until attempts are exhausted
//   - transport error or non-2xx status: log, back off on the same schedule
//   - 2xx: decode and return
//
// After maxRetries attempts the result is ErrExhausted.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		body, err := c.getOnce(ctx, rawURL, params)
		if err == nil {
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("decoding response from %s: %w", rawURL, err)
			}
			return nil
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		c.logger.Warn("request failed, retrying",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)

		// 1s, 2s, 4s, ... for the default base delay. The last attempt's
		// sleep is skipped — there is nothing left to wait for.
		if attempt < c.maxRetries-1 {
			c.sleep(c.baseDelay * (1 << attempt))
		}
	}

	c.logger.Error("request failed after all attempts",
		zap.String("url", rawURL),
		zap.Int("max_retries", c.maxRetries),
	)
	return ErrExhausted
}

func (c *Client) getOnce(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("User-Agent", "newsimage/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("rate limited (HTTP 429)")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20)) // 10MB limit
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	return body, nil
}

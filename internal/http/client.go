package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/temoto/robotstxt"
)

// DefaultUserAgent is a desktop Chrome User-Agent. SoundCloud serves the
// full track page markup only to browser-like clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

const (
	// DefaultMaxRetries is how many times a failed request is retried.
	DefaultMaxRetries = 5
	// DefaultBackoff is the base of the exponential retry delay.
	DefaultBackoff = 500 * time.Millisecond
	// DefaultTimeout applies when Fetch is called with a zero timeout.
	DefaultTimeout = 20 * time.Second
)

// ErrDisallowed is returned when robots.txt forbids fetching a URL.
var ErrDisallowed = errors.New("disallowed by robots.txt")

// retryStatuses are the responses worth another attempt.
var retryStatuses = map[int]struct{}{
	http.StatusTooManyRequests:     {},
	http.StatusInternalServerError: {},
	http.StatusBadGateway:          {},
	http.StatusServiceUnavailable:  {},
	http.StatusGatewayTimeout:      {},
}

// Page is a fetched document.
type Page struct {
	URL        string
	StatusCode int
	Body       string
}

// OK reports whether the page was served with a non-error status.
func (p *Page) OK() bool {
	return p != nil && p.StatusCode < http.StatusBadRequest
}

// Error reports a request that could not produce a response.
type Error struct {
	URL      string
	Message  string
	Attempts int
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch %s: %s after %d attempt(s): %v", e.URL, e.Message, e.Attempts, e.Cause)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Option configures a Client.
type Option func(*Client)

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRetries sets the retry count and the base backoff delay.
func WithRetries(maxRetries int, backoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = max(maxRetries, 0)
		c.backoff = max(backoff, 0)
	}
}

// WithRobots enables robots.txt checks. The robots file of each host is
// fetched once and cached for the lifetime of the Client.
func WithRobots(enabled bool) Option {
	return func(c *Client) {
		c.respectRobots = enabled
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for retry diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client fetches track pages with retries and exponential backoff.
//
// Transport errors and 429/500/502/503/504 responses are retried up to
// maxRetries times, waiting backoff*2^attempt between attempts. When the
// retries are exhausted on a status code, the last response is returned as
// a Page so callers can inspect the status.
//
// Example usage:
//
//	client := NewClient(WithRetries(5, 500*time.Millisecond))
//
//	page, err := client.Fetch(ctx, "https://soundcloud.com/artist/track", 15*time.Second)
//	if err != nil || !page.OK() {
//	    // treat as a failed fetch
//	}
type Client struct {
	httpClient    *http.Client
	userAgent     string
	maxRetries    int
	backoff       time.Duration
	respectRobots bool
	logger        *log.Logger

	robotsMu sync.Mutex
	robots   map[string]*robotstxt.RobotsData
}

// NewClient creates a new Client with the default User-Agent and retry
// policy, then applies opts.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		userAgent:  DefaultUserAgent,
		maxRetries: DefaultMaxRetries,
		backoff:    DefaultBackoff,
		robots:     make(map[string]*robotstxt.RobotsData),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch performs a GET request for rawURL. Each attempt is bounded by
// timeout; a zero timeout means DefaultTimeout.
//
// Returns an *Error if the URL is invalid or no response could be obtained
// after all retries, and an error wrapping ErrDisallowed when robots checks
// are enabled and the URL is disallowed.
func (c *Client) Fetch(ctx context.Context, rawURL string, timeout time.Duration) (*Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if c.respectRobots {
		allowed, err := c.allowed(ctx, u, timeout)
		if err != nil {
			c.debug("Could not read robots.txt, continuing", "host", u.Host, "err", err)
		} else if !allowed {
			return nil, fmt.Errorf("%s: %w", rawURL, ErrDisallowed)
		}
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		page, err := c.get(ctx, rawURL, timeout)
		retryable := err != nil || isRetryStatus(page.StatusCode)
		if !retryable || attempt >= c.maxRetries {
			if err != nil {
				return nil, &Error{URL: rawURL, Message: "request failed", Attempts: attempt + 1, Cause: err}
			}
			return page, nil
		}

		lastErr = err
		if lastErr == nil {
			lastErr = fmt.Errorf("HTTP %d", page.StatusCode)
		}
		delay := c.backoff * time.Duration(1<<attempt)
		c.debug("Retrying request", "url", rawURL, "attempt", attempt+1, "delay", delay, "reason", lastErr)

		select {
		case <-ctx.Done():
			return nil, &Error{URL: rawURL, Message: "request cancelled", Attempts: attempt + 1, Cause: ctx.Err()}
		case <-time.After(delay):
		}
	}
}

func (c *Client) get(ctx context.Context, rawURL string, timeout time.Duration) (*Page, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Page{URL: rawURL, StatusCode: resp.StatusCode, Body: string(body)}, nil
}

// allowed consults the cached robots.txt of the URL's host.
func (c *Client) allowed(ctx context.Context, u *url.URL, timeout time.Duration) (bool, error) {
	host := u.Scheme + "://" + u.Host

	c.robotsMu.Lock()
	data, ok := c.robots[host]
	c.robotsMu.Unlock()

	if !ok {
		page, err := c.get(ctx, host+"/robots.txt", timeout)
		if err != nil {
			return true, err
		}
		data, err = robotstxt.FromStatusAndBytes(page.StatusCode, []byte(page.Body))
		if err != nil {
			return true, err
		}
		c.robotsMu.Lock()
		c.robots[host] = data
		c.robotsMu.Unlock()
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return data.TestAgent(path, c.userAgent), nil
}

func isRetryStatus(code int) bool {
	_, ok := retryStatuses[code]
	return ok
}

func (c *Client) debug(msg string, keyvals ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, keyvals...)
	}
}

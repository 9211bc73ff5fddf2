// Package httpclient provides the pooled HTTP client used to probe profile
// URLs: fixed retry policy on a small set of status codes, per-attempt
// timeout, User-Agent rotation, optional static proxy pool and rate limit.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"slices"
	"time"

	"golang.org/x/time/rate"

	"gokutrace/internal/platform/errors"
	"gokutrace/internal/platform/logx"
	"gokutrace/internal/platform/metrics"
)

// Client is a probe-oriented HTTP client. It never follows redirects.
// It is safe for concurrent use; the transport is shared by all callers.
type Client struct {
	httpClient  *http.Client
	transport   *http.Transport
	rateLimiter *rate.Limiter
	proxies     []*url.URL
	metrics     *metrics.Metrics
	logger      logx.Logger
	config      Config
}

// Config holds the configuration for the HTTP client.
type Config struct {
	// Timeout bounds each attempt, body included.
	// Default: 3 seconds
	Timeout time.Duration

	// MaxRetries is the number of retries after the first attempt.
	// Only RetryStatuses trigger a retry.
	// Default: 3
	MaxRetries int

	// RetryBackoff is the sleep before the first retry; it doubles on each
	// subsequent retry.
	// Default: 500 milliseconds
	RetryBackoff time.Duration

	// MaxRetryBackoff caps a single backoff sleep.
	// Default: 10 seconds
	MaxRetryBackoff time.Duration

	// RetryStatuses lists the HTTP status codes that are retried.
	// Default: 429, 500, 502, 503, 504
	RetryStatuses []int

	// UserAgents is the rotation pool; one is picked at random per probe.
	// Default: DefaultUserAgents()
	UserAgents []string

	// Proxies is the static pool used for stealth probes.
	// Empty means stealth probes go direct.
	Proxies []string

	// RateLimit is the maximum requests per second across all workers.
	// 0 means no rate limiting.
	RateLimit float64

	// RateLimitBurst is the burst size for rate limiting.
	// Default: 1
	RateLimitBurst int

	// MaxBodyBytes bounds how much of a 2xx body is scanned for an
	// empty-profile marker.
	// Default: 1 MiB
	MaxBodyBytes int64

	// MaxIdleConnsPerHost sizes the shared connection pool.
	// Default: 16
	MaxIdleConnsPerHost int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:             3 * time.Second,
		MaxRetries:          3,
		RetryBackoff:        500 * time.Millisecond,
		MaxRetryBackoff:     10 * time.Second,
		RetryStatuses:       []int{429, 500, 502, 503, 504},
		UserAgents:          DefaultUserAgents(),
		RateLimitBurst:      1,
		MaxBodyBytes:        1 << 20,
		MaxIdleConnsPerHost: 16,
	}
}

type proxyKey struct{}

// New creates a client. It fails only on unparsable proxy URLs.
func New(config Config, logger logx.Logger, m *metrics.Metrics) (*Client, error) {
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
	if config.MaxRetryBackoff <= 0 {
		config.MaxRetryBackoff = def.MaxRetryBackoff
	}
	if len(config.RetryStatuses) == 0 {
		config.RetryStatuses = def.RetryStatuses
	}
	if len(config.UserAgents) == 0 {
		config.UserAgents = def.UserAgents
	}
	if config.RateLimitBurst <= 0 {
		config.RateLimitBurst = 1
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = def.MaxBodyBytes
	}
	if config.MaxIdleConnsPerHost <= 0 {
		config.MaxIdleConnsPerHost = def.MaxIdleConnsPerHost
	}
	if logger == nil {
		logger = logx.Nop()
	}

	proxies := make([]*url.URL, 0, len(config.Proxies))
	for _, raw := range config.Proxies {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid proxy %q", raw)
		}
		proxies = append(proxies, u)
	}

	transport := &http.Transport{
		// stealth probes carry their proxy in the request context
		Proxy: func(req *http.Request) (*url.URL, error) {
			if p, ok := req.Context().Value(proxyKey{}).(*url.URL); ok {
				return p, nil
			}
			return nil, nil
		},
		DialContext: (&net.Dialer{
			Timeout:   config.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          config.MaxIdleConnsPerHost * 8,
		MaxIdleConnsPerHost:   config.MaxIdleConnsPerHost,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   config.Timeout,
		ExpectContinueTimeout: time.Second,
	}

	httpClient := &http.Client{
		Timeout:   config.Timeout,
		Transport: transport,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), config.RateLimitBurst)
	}

	return &Client{
		httpClient:  httpClient,
		transport:   transport,
		rateLimiter: limiter,
		proxies:     proxies,
		metrics:     m,
		logger:      logger.With("component", "httpclient"),
		config:      config,
	}, nil
}

// Get issues a GET with the retry policy. proxy may be nil.
// Transport errors are returned immediately; a retryable status is retried
// until MaxRetries, after which the last response is returned as is.
func (c *Client) Get(ctx context.Context, rawURL string, headers map[string]string, proxy *url.URL) (*http.Response, error) {
	if proxy != nil {
		ctx = context.WithValue(ctx, proxyKey{}, proxy)
	}

	for attempt := 0; ; attempt++ {
		if c.rateLimiter != nil {
			if err := c.rateLimiter.Wait(ctx); err != nil {
				return nil, errors.Wrap(errors.ErrRateLimit, err.Error())
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create request for %s", rawURL)
		}
		for key, value := range headers {
			req.Header.Set(key, value)
		}

		c.metrics.Attempt()
		start := time.Now()
		resp, err := c.httpClient.Do(req)
		duration := time.Since(start)

		if err != nil {
			c.logger.Debug("HTTP request failed",
				"url", rawURL,
				"attempt", attempt+1,
				"error", err.Error(),
				"duration_ms", duration.Milliseconds(),
			)
			return nil, err
		}

		c.logger.Debug("HTTP response received",
			"url", rawURL,
			"status", resp.StatusCode,
			"attempt", attempt+1,
			"duration_ms", duration.Milliseconds(),
		)

		if !c.isRetryableStatus(resp.StatusCode) || attempt >= c.config.MaxRetries {
			return resp, nil
		}

		discardBody(resp)
		c.metrics.Retry(resp.StatusCode)

		if err := c.backoff(ctx, attempt); err != nil {
			return nil, errors.Wrap(err, "backoff interrupted")
		}
	}
}

// isRetryableStatus checks if an HTTP status code should trigger a retry.
func (c *Client) isRetryableStatus(code int) bool {
	return slices.Contains(c.config.RetryStatuses, code)
}

// backoffFor returns RetryBackoff * 2^attempt capped at MaxRetryBackoff.
func (c *Client) backoffFor(attempt int) time.Duration {
	d := c.config.RetryBackoff << attempt
	if d <= 0 || d > c.config.MaxRetryBackoff {
		d = c.config.MaxRetryBackoff
	}
	return d
}

func (c *Client) backoff(ctx context.Context, attempt int) error {
	d := c.backoffFor(attempt)
	c.logger.Debug("backing off before retry", "attempt", attempt+1, "backoff_ms", d.Milliseconds())

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// pickProxy returns a random proxy from the pool, nil when the pool is empty.
func (c *Client) pickProxy() *url.URL {
	if len(c.proxies) == 0 {
		return nil
	}
	return pick(c.proxies)
}

// CloseIdleConnections releases pooled connections.
func (c *Client) CloseIdleConnections() {
	c.transport.CloseIdleConnections()
}

// String returns a human-readable representation of the client configuration.
func (c *Client) String() string {
	return fmt.Sprintf("HTTPClient{timeout=%s, max_retries=%d, proxies=%d, rate_limit=%.1f/s}",
		c.config.Timeout,
		c.config.MaxRetries,
		len(c.proxies),
		c.config.RateLimit,
	)
}

// discardBody drains a little of the body so the connection can be reused.
func discardBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}

package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"marquee/internal/envelope"
	"marquee/internal/logging"
	"marquee/internal/services"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultUserAgent  = "marquee"
	maxBodyBytes      = 16 << 20
	defaultRetryDelay = 300 * time.Millisecond
)

// Client fetches list and detail payloads from the catalog API. Responses
// are returned decoded but otherwise untouched.
type Client struct {
	baseURL    string
	httpClient *http.Client
	attempts   uint
	retryDelay time.Duration
	userAgent  string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request ceiling on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithRetryAttempts sets the total number of attempts per request. One means
// no retry.
func WithRetryAttempts(attempts int) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.attempts = uint(attempts)
		}
	}
}

// WithRetryDelay sets the base backoff between attempts.
func WithRetryDelay(delay time.Duration) Option {
	return func(c *Client) {
		if delay >= 0 {
			c.retryDelay = delay
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		if agent = strings.TrimSpace(agent); agent != "" {
			c.userAgent = agent
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a catalog API client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, "upstream", "new", "base url required", nil)
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "upstream", "new", "invalid base url", err)
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		attempts:   1,
		retryDelay: defaultRetryDelay,
		userAgent:  defaultUserAgent,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "upstream")
	return client, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches one page of a list resource.
func (c *Client) List(ctx context.Context, q ListQuery) (any, error) {
	path, err := q.path()
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "upstream", "list", "", err)
	}
	return c.get(ctx, path, q.Params())
}

// Search fetches one page of keyword search results.
func (c *Client) Search(ctx context.Context, keyword string, page, limit int) (any, error) {
	return c.List(ctx, ListQuery{Kind: KindSearch, ID: keyword, Page: page, Limit: limit})
}

// Detail fetches the detail payload for a title slug.
func (c *Client) Detail(ctx context.Context, slug string) (any, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, services.Wrap(services.ErrValidation, "upstream", "detail", "slug must not be empty", nil)
	}
	return c.get(ctx, "/phim/"+url.PathEscape(slug), nil)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	logger := logging.WithContext(ctx, c.logger)

	body, err := retry.DoWithData(
		func() (any, error) { return c.fetch(ctx, endpoint, logger) },
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			logger.Debug("retrying upstream request",
				logging.String("url", endpoint),
				logging.Int("attempt", int(n)+1),
				logging.Error(err))
		}),
	)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string, logger *slog.Logger) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, retry.Unrecoverable(services.Wrap(services.ErrValidation, "upstream", "fetch", "build request", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		req.Header.Set("X-Request-ID", rid)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	logger.Debug("upstream response",
		logging.String("url", endpoint),
		logging.Int("status", resp.StatusCode),
		logging.Duration("latency", latency))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, classifyStatus(resp.StatusCode, endpoint)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classifyTransport(err)
	}
	body, err := envelope.Decode(data)
	if err != nil {
		return nil, services.Wrap(services.ErrDecode, "upstream", "decode", fmt.Sprintf("%d bytes", len(data)), err)
	}
	return body, nil
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	return errors.Is(err, services.ErrNotFound)
}

package fetch

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"events_rss/internal/domain"
)

const userAgent = "events-rss/1.0"

// Config holds fetcher configuration. MaxAttempts counts the initial
// request, so 3 means at most two retries.
type Config struct {
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Client is the sole point of network I/O for the scraping pipeline. It
// applies a fixed per-call timeout and retries transient failures
// (transport errors and 5xx responses) with exponential backoff.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	retries := cfg.MaxAttempts - 1
	if retries < 0 {
		retries = 0
	}

	http := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(retries).
		SetRetryWaitTime(cfg.InitialBackoff).
		SetRetryMaxWaitTime(cfg.MaxBackoff).
		SetHeader("User-Agent", userAgent).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})

	return &Client{
		http:   http,
		logger: logger,
	}
}

// Get fetches the given URL and returns the response body. Any transport
// error or non-success status is returned as a *domain.FetchError; the
// caller decides whether the absence of the page is fatal to its unit of
// work.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	res, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: err}
	}
	if res.IsError() {
		return nil, &domain.FetchError{URL: url, StatusCode: res.StatusCode()}
	}

	c.logger.Debug("fetched page", "url", url, "bytes", len(res.Body()))

	return res.Body(), nil
}

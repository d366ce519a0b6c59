package transport

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	resty "gopkg.in/resty.v1"
)

// DefaultTimeout applies to every request unless Options overrides it
const DefaultTimeout = 60 * time.Second

// Options configures a Client
type Options struct {
	Timeout   time.Duration
	TLS       TLSPolicy
	UserAgent string
}

// DefaultOptions returns a 60 second timeout and the legacy TLS policy
func DefaultOptions() Options {
	return Options{
		Timeout: DefaultTimeout,
		TLS:     LegacyTLSPolicy(),
	}
}

// Client is a simple HTTP client for fetching CTA JSON documents.
// It performs exactly one attempt per Fetch.
type Client struct {
	http    *resty.Client
	options Options
}

// NewClient creates a new client for the given options
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.TLS.Name == "" {
		opts.TLS = LegacyTLSPolicy()
	}

	rc := resty.New().
		SetTimeout(opts.Timeout).
		SetTLSClientConfig(opts.TLS.Config()).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if opts.UserAgent != "" {
		rc.SetHeader("User-Agent", opts.UserAgent)
	}

	return &Client{http: rc, options: opts}
}

// Options returns the options the client was built with
func (c *Client) Options() Options {
	return c.options
}

// Fetch performs a GET against url and returns the raw body.
// Non-2xx responses yield *HTTPError; anything that prevents a response yields *NetworkError.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: unwrapURLError(err)}
	}

	log.Debug().
		Str("url", RedactURL(url)).
		Int("status", resp.StatusCode()).
		Str("duration", time.Since(start).String()).
		Msg("fetched")

	if !resp.IsSuccess() {
		return nil, &HTTPError{URL: url, StatusCode: resp.StatusCode(), Status: resp.Status()}
	}
	return resp.Body(), nil
}

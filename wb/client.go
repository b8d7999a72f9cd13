// Package wb is a client for the WindBorne sensor data API.
//
// See https://windbornesystems.com/docs/api
package wb

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// RequestHook is called after every API request with the HTTP status
// (0 if the request never got a response) and how long it took.
type RequestHook func(status int, elapsed time.Duration)

// Client issues authenticated GET requests against the API.
// One request is in flight at a time.
type Client struct {
	http    *resty.Client
	baseURL string
	auth    *Authenticator
	scheme  string
	logger  *slog.Logger
	hook    RequestHook
}

// Option configures a Client.
type Option func(*Client)

// WithAuthScheme selects "basic" (default) or "bearer" authorization.
func WithAuthScheme(scheme string) Option {
	return func(c *Client) { c.scheme = scheme }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRequestHook registers h to observe every request.
func WithRequestHook(h RequestHook) Option {
	return func(c *Client) { c.hook = h }
}

// NewClient returns a client for the API rooted at baseURL.
func NewClient(baseURL string, auth *Authenticator, userAgent string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		auth:    auth,
		scheme:  "basic",
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http = resty.New().
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetRetryCount(0).
		SetLogger(restyLogger{c.logger})
	return c
}

// get fetches url and returns the response body of a 2xx response.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	token, err := c.auth.Token()
	if err != nil {
		return nil, err
	}
	req := c.http.R().SetContext(ctx)
	if c.scheme == "bearer" {
		req.SetAuthToken(token)
	} else {
		req.SetBasicAuth(c.auth.ClientID(), token)
	}

	start := time.Now()
	resp, err := req.Get(url)
	elapsed := time.Since(start)
	if err != nil {
		c.observe(0, elapsed)
		return nil, fmt.Errorf("%w: GET %s: %w", ErrNetwork, url, err)
	}
	c.observe(resp.StatusCode(), elapsed)
	c.logger.Debug("api request", "url", url, "status", resp.StatusCode(), "elapsed", elapsed)

	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return nil, fmt.Errorf("%w: GET %s: %s", ErrAuthentication, url, resp.Status())
	case !resp.IsSuccess():
		return nil, fmt.Errorf("%w: GET %s: %s", ErrNetwork, url, resp.Status())
	}
	return resp.Body(), nil
}

func (c *Client) observe(status int, elapsed time.Duration) {
	if c.hook != nil {
		c.hook(status, elapsed)
	}
}

// restyLogger routes resty's own messages into slog.
type restyLogger struct {
	l *slog.Logger
}

func (r restyLogger) Errorf(format string, v ...any) { r.l.Error(fmt.Sprintf(format, v...)) }
func (r restyLogger) Warnf(format string, v ...any) { r.l.Warn(fmt.Sprintf(format, v...)) }
func (r restyLogger) Debugf(format string, v ...any) { r.l.Debug(fmt.Sprintf(format, v...)) }

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/storefront/core/logger"
	"github.com/dmitrymomot/storefront/core/notify"
)

// Notices shown to the user.
const (
	NoticeServerUnavailable = "The server is temporarily unavailable. Please try again later."
	NoticeUnreachable       = "Cannot reach the server. Check your network connection."
)

// DefaultAuthPrefixes are the path prefixes that always carry the bearer token.
var DefaultAuthPrefixes = []string{"/users/", "/products/", "/auth/logout"}

// Authorizer supplies the bearer token and tears the session down when it is unusable.
// *session.Manager implements it.
type Authorizer interface {
	Authorize(ctx context.Context) (string, error)
	Expire(ctx context.Context) error
}

// Client talks to the storefront backend.
type Client struct {
	http     *http.Client
	resolve  Resolver
	auth     Authorizer
	notifier notify.Notifier
	prefixes []string
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the request timeout of the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// WithBaseURL uses a fixed base URL.
func WithBaseURL(raw string, opts ...BaseURLOption) Option {
	return WithResolver(StaticResolver(raw, opts...))
}

// WithResolver sets how the base URL is resolved before each request.
func WithResolver(r Resolver) Option {
	return func(c *Client) {
		if r != nil {
			c.resolve = r
		}
	}
}

// WithAuthorizer sets the token source for authenticated requests.
func WithAuthorizer(a Authorizer) Option {
	return func(c *Client) { c.auth = a }
}

// WithNotifier sets where user-visible notices go.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

// WithAuthPrefixes replaces the list of path prefixes that require authentication.
func WithAuthPrefixes(prefixes ...string) Option {
	return func(c *Client) { c.prefixes = prefixes }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Client. Without a resolver the base URL comes from API_BASE_URL
// with the default fallback.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		http:     &http.Client{Timeout: 15 * time.Second},
		resolve:  EnvResolver(DefaultFallbackBaseURL, false),
		prefixes: DefaultAuthPrefixes,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if _, err := c.resolve(); err != nil {
		return nil, err
	}
	return c, nil
}

// BaseURL resolves the current base URL.
func (c *Client) BaseURL() (string, error) {
	return c.resolve()
}

type requestOptions struct {
	header http.Header
	query  url.Values
	body   io.Reader
	auth   *bool
	err    error
}

// RequestOption configures a single call.
type RequestOption func(*requestOptions)

// WithHeader sets a request header, overriding the defaults.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) { o.header.Set(key, value) }
}

// WithQuery adds query parameters.
func WithQuery(q url.Values) RequestOption {
	return func(o *requestOptions) {
		for k, vs := range q {
			for _, v := range vs {
				o.query.Add(k, v)
			}
		}
	}
}

// WithJSON encodes v as the request body.
func WithJSON(v any) RequestOption {
	return func(o *requestOptions) {
		data, err := json.Marshal(v)
		if err != nil {
			o.err = fmt.Errorf("encode request body: %w", err)
			return
		}
		o.body = bytes.NewReader(data)
	}
}

// WithBody sets a raw request body.
func WithBody(r io.Reader) RequestOption {
	return func(o *requestOptions) { o.body = r }
}

// WithAuth forces the bearer token onto the request.
func WithAuth() RequestOption {
	return func(o *requestOptions) {
		v := true
		o.auth = &v
	}
}

// WithoutAuth sends the request without the bearer token even if the path requires it.
func WithoutAuth() RequestOption {
	return func(o *requestOptions) {
		v := false
		o.auth = &v
	}
}

// RequiresAuth reports whether path matches one of the configured auth prefixes.
func (c *Client) RequiresAuth(path string) bool {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	for _, p := range c.prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// AuthHeaders returns the headers of an authenticated request.
func (c *Client) AuthHeaders(ctx context.Context) (http.Header, error) {
	if c.auth == nil {
		return nil, ErrUnauthorized
	}
	token, err := c.auth.Authorize(ctx)
	if err != nil {
		return nil, err
	}
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	h.Set("Authorization", "Bearer "+token)
	return h, nil
}

// Call sends a request to path relative to the base URL and returns the raw response.
// Non-2xx responses are not errors here; use the typed helpers for decoding.
func (c *Client) Call(ctx context.Context, method, path string, opts ...RequestOption) (*http.Response, error) {
	o := requestOptions{header: make(http.Header), query: make(url.Values)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	base, err := c.resolve()
	if err != nil {
		return nil, err
	}

	header := http.Header{
		"Content-Type": {"application/json"},
		"Accept":       {"application/json"},
	}
	for k, vs := range o.header {
		header[k] = vs
	}

	needsAuth := c.RequiresAuth(path)
	if o.auth != nil {
		needsAuth = *o.auth
	}
	if needsAuth {
		auth, err := c.AuthHeaders(ctx)
		if err != nil {
			c.logger.WarnContext(ctx, "cannot authorize request", logger.Path(path), logger.Error(err))
			if c.auth != nil {
				if expErr := c.auth.Expire(ctx); expErr != nil {
					c.logger.ErrorContext(ctx, "session teardown incomplete", logger.Error(expErr))
				}
			}
			return nil, err
		}
		for k, vs := range auth {
			header[k] = vs
		}
	}

	target := base + path
	if len(o.query) > 0 {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		target += sep + o.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, o.body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header = header

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.ErrorContext(ctx, "request failed",
			logger.Method(method), logger.Path(path), logger.Elapsed(start), logger.Error(err))
		c.notice(ctx, notify.LevelError, NoticeUnreachable)
		return nil, errors.Join(ErrUnreachable, err)
	}

	c.logger.DebugContext(ctx, "request completed",
		logger.Method(method), logger.Path(path), logger.StatusCode(resp.StatusCode), logger.Elapsed(start))

	if resp.StatusCode >= http.StatusInternalServerError {
		c.logger.WarnContext(ctx, "server unavailable", logger.Path(path), logger.StatusCode(resp.StatusCode))
		c.notice(ctx, notify.LevelError, NoticeServerUnavailable)
	}
	return resp, nil
}

// Ping checks that the backend answers. Any status below 500 counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.Call(ctx, http.MethodGet, "/", WithoutAuth())
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return newError(resp.StatusCode, resp.Status)
	}
	return nil
}

func (c *Client) notice(ctx context.Context, level notify.Level, msg string) {
	if c.notifier != nil {
		c.notifier.Alert(ctx, level, msg)
	}
}

// do calls the endpoint and decodes a JSON response into out. A nil out discards the body.
func (c *Client) do(ctx context.Context, method, path string, out any, opts ...RequestOption) error {
	resp, err := c.Call(ctx, method, path, opts...)
	if err != nil {
		return err
	}
	return decodeJSON(resp, out)
}

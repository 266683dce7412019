// Package graylog is a client binding for the Graylog server's HTTP management
// API (stream, user, and permission administration). Every operation performs
// one synchronous request authenticated with HTTP basic auth, where the
// username is the caller's API token and the password is the literal "token".
package graylog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/grayops-hq/grayctl/pkg/httpclient"
	"github.com/tidwall/gjson"
)

const (
	// DefaultBaseURL is the management API root of a local server install.
	DefaultBaseURL = "http://127.0.0.1:9000/api/"

	// tokenPassword is the fixed basic-auth password the API expects when
	// authenticating with an access token.
	tokenPassword = "token"

	defaultTimeout = 15 * time.Second
)

// Cache stores GET response bodies keyed by request URL. Implementations
// decide retention; a stale or missing entry simply falls through to the
// network.
type Cache interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, body []byte) error
}

// Options configures a Client beyond the required API token.
type Options struct {
	// BaseURL is the API root. Defaults to DefaultBaseURL.
	BaseURL string
	// Timeout applies to the default transport only.
	Timeout time.Duration
	// Transport overrides the HTTP client used for all requests.
	Transport httpclient.Client
	// Logger receives request diagnostics. Defaults to a no-op logger.
	Logger Logger
	// Cache, when set, short-circuits GET requests with cached bodies.
	Cache Cache
}

// Client issues authenticated requests against the management API. It holds
// no per-call state and is safe for concurrent use.
type Client struct {
	base    *url.URL
	token   string
	headers map[string]string
	http    httpclient.Client
	cache   Cache
	log     Logger
}

// New creates a Client for the given API token. No network activity occurs
// until an operation is invoked.
func New(token string, opts ...Options) (*Client, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}

	baseURL := o.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("base url %q is not absolute", baseURL)
	}

	transport := o.Transport
	if transport == nil {
		timeout := o.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		transport = httpclient.NewRestyClient(timeout)
	}

	return &Client{
		base:  base,
		token: token,
		headers: map[string]string{
			"Content-Type":   "application/json",
			"X-Requested-By": "cli",
		},
		http:  transport,
		cache: o.Cache,
		log:   ensureLogger(o.Logger),
	}, nil
}

// resolve joins the operation path against the base URL using standard
// relative-resolution rules: a path beginning with "/" replaces the base path
// instead of appending to it.
func (c *Client) resolve(op string) (string, error) {
	ref, err := url.Parse(op)
	if err != nil {
		return "", fmt.Errorf("parse operation path %q: %w", op, err)
	}
	return c.base.ResolveReference(ref).String(), nil
}

func (c *Client) auth() *httpclient.BasicAuth {
	return &httpclient.BasicAuth{Username: c.token, Password: tokenPassword}
}

// Get performs a GET against the operation path. The boolean reports whether
// the server answered 200 with a JSON body; any other status yields ok=false
// with no error. Transport failures are returned as errors.
func (c *Client) Get(ctx context.Context, op string) (gjson.Result, bool, error) {
	reqURL, err := c.resolve(op)
	if err != nil {
		return gjson.Result{}, false, err
	}

	if c.cache != nil {
		if body, ok, err := c.cache.Get(reqURL); err == nil && ok {
			c.log.DebugObj("serving cached response", "cache_hit", map[string]any{"url": reqURL})
			return gjson.ParseBytes(body), true, nil
		}
	}

	resp, err := c.http.Do(ctx, httpclient.Request{
		Method:    http.MethodGet,
		URL:       reqURL,
		Headers:   c.headers,
		BasicAuth: c.auth(),
	})
	if err != nil {
		return gjson.Result{}, false, fmt.Errorf("get %s: %w", op, err)
	}
	if resp.StatusCode() != http.StatusOK {
		c.log.WarnObj("get returned no result", "get_miss", map[string]any{
			"operation": op,
			"status":    resp.StatusCode(),
		})
		return gjson.Result{}, false, nil
	}

	if c.cache != nil {
		if err := c.cache.Put(reqURL, resp.Body()); err != nil {
			c.log.WarnObj("cache write failed", "cache_error", map[string]any{
				"url":   reqURL,
				"error": err.Error(),
			})
		}
	}
	return gjson.ParseBytes(resp.Body()), true, nil
}

// Put performs a PUT with the payload serialized as the JSON request body and
// returns the raw response status code. The body is never inspected.
func (c *Client) Put(ctx context.Context, op string, payload any) (int, error) {
	reqURL, err := c.resolve(op)
	if err != nil {
		return 0, err
	}

	resp, err := c.http.Do(ctx, httpclient.Request{
		Method:    http.MethodPut,
		URL:       reqURL,
		Headers:   c.headers,
		BasicAuth: c.auth(),
		Body:      payload,
	})
	if err != nil {
		return 0, fmt.Errorf("put %s: %w", op, err)
	}
	return resp.StatusCode(), nil
}

// Delete performs a DELETE against the operation path and returns the raw
// response status code.
func (c *Client) Delete(ctx context.Context, op string) (int, error) {
	reqURL, err := c.resolve(op)
	if err != nil {
		return 0, err
	}

	resp, err := c.http.Do(ctx, httpclient.Request{
		Method:    http.MethodDelete,
		URL:       reqURL,
		Headers:   c.headers,
		BasicAuth: c.auth(),
	})
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", op, err)
	}
	return resp.StatusCode(), nil
}

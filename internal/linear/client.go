// Package linear is a minimal client for Linear's GraphQL API covering the
// queries linear-stats needs: viewer, organization, team and paginated team
// issues.
package linear

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spiffcs/linear-stats/internal/apperr"
	"github.com/spiffcs/linear-stats/internal/constants"
	"github.com/spiffcs/linear-stats/internal/log"
	"golang.org/x/oauth2"
)

// apiKeyTransport sends a personal API key in the Authorization header.
// Linear expects the raw key there, without a "Bearer" scheme.
type apiKeyTransport struct {
	key  string
	base http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", t.key)
	return t.base.RoundTrip(r)
}

// rateLimitTransport observes Linear's rate limit headers. It never delays or
// retries a request.
type rateLimitTransport struct {
	base http.RoundTripper
}

func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return resp, err
	}

	remaining, limit, resetAt := parseRateLimitHeaders(resp)
	if remaining < 0 || limit <= 0 {
		return resp, nil
	}

	log.Debug("rate limit", "remaining", remaining, "limit", limit)
	if remaining <= constants.RateLimitLowWatermark {
		log.Warn("Linear API rate limit low", "remaining", remaining, "resets_at", resetAt.Format(time.RFC3339))
	}

	return resp, nil
}

// parseRateLimitHeaders extracts request quota info from response headers.
// Missing values are reported as -1; the reset header is epoch milliseconds.
func parseRateLimitHeaders(resp *http.Response) (remaining, limit int, resetAt time.Time) {
	remaining = -1
	limit = -1

	if v := resp.Header.Get("X-RateLimit-Requests-Remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			remaining = n
		}
	}

	if v := resp.Header.Get("X-RateLimit-Requests-Limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	if v := resp.Header.Get("X-RateLimit-Requests-Reset"); v != "" {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
			resetAt = time.UnixMilli(ms)
		}
	}

	return remaining, limit, resetAt
}

// Client talks to the Linear GraphQL API.
type Client struct {
	http     *http.Client
	endpoint string
}

type clientOptions struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*clientOptions)

// WithEndpoint overrides the GraphQL endpoint URL.
func WithEndpoint(endpoint string) ClientOption {
	return func(o *clientOptions) {
		if endpoint != "" {
			o.endpoint = endpoint
		}
	}
}

// WithHTTPClient sets the underlying HTTP client whose transport requests
// are sent through.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = hc
	}
}

// WithTimeout bounds each request. Zero keeps the default.
func WithTimeout(d time.Duration) ClientOption {
	return func(o *clientOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// IsOAuthToken reports whether the credential is an OAuth access token
// rather than a personal API key.
func IsOAuthToken(key string) bool {
	return strings.HasPrefix(key, constants.OAuthTokenPrefix)
}

// NewClient creates a client authenticated with apiKey. An empty key fails
// before any request is made.
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, apperr.Authentication("Linear API key not provided", nil).
			WithSuggestion("Set the LINEAR_API_KEY environment variable")
	}

	o := clientOptions{
		endpoint: constants.DefaultEndpoint,
		timeout:  constants.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	base := o.httpClient
	if base == nil {
		base = &http.Client{}
	}

	var hc *http.Client
	if IsOAuthToken(apiKey) {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey})
		hc = oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, base), ts)
	} else {
		hc = &http.Client{Transport: &apiKeyTransport{key: apiKey, base: transportOf(base)}}
	}

	hc.Transport = &rateLimitTransport{base: hc.Transport}
	hc.Timeout = o.timeout

	return &Client{
		http:     hc,
		endpoint: o.endpoint,
	}, nil
}

func transportOf(hc *http.Client) http.RoundTripper {
	if hc.Transport != nil {
		return hc.Transport
	}
	return http.DefaultTransport
}

package httpclient

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultUserAgent identifies outbound requests when callers set none.
const DefaultUserAgent = "shabd-relay/1.0"

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// Option tweaks the underlying resty client.
type Option func(*resty.Client)

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *resty.Client) {
		if ua != "" {
			c.SetHeader("User-Agent", ua)
		}
	}
}

// WithHeaders sets headers sent on every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *resty.Client) {
		if len(headers) > 0 {
			c.SetHeaders(headers)
		}
	}
}

// WithResponseBodyLimit makes Get fail with resty.ErrResponseBodyTooLarge
// once a body grows past limit bytes while it is read.
func WithResponseBodyLimit(limit int) Option {
	return func(c *resty.Client) {
		if limit > 0 {
			c.SetResponseBodyLimit(limit)
		}
	}
}

// NewRestyClient creates a new RestyClient with the specified timeout.
func NewRestyClient(timeout time.Duration, opts ...Option) *RestyClient {
	return &RestyClient{client: NewRestyHTTPClient(timeout, opts...)}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration, opts ...Option) *resty.Client {
	c := resty.New()
	c.SetTimeout(timeout)
	c.SetHeader("User-Agent", DefaultUserAgent)
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Get performs an HTTP GET request with the specified context, URL, and headers.
// Non-2xx statuses are not errors; callers inspect StatusCode.
func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }

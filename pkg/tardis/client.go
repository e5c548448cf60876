package tardis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/tickstream-hq/tardis-harvester/pkg/httpclient"
)

const (
	// DefaultBaseURL is the documented endpoint for the Tardis HTTP API.
	DefaultBaseURL = "https://api.tardis.dev/v1"

	// UserAgent identifies this client to the API for server-side observability.
	UserAgent = "tardis-harvester/0.2.0"

	defaultTimeout = 30 * time.Second
)

// Client issues authenticated requests against the Tardis HTTP API. Its state
// (base URL, API key, transport) is fixed at construction, so a single Client
// is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	http    httpclient.Client
}

// Option configures a Client at construction time.
type Option func(*clientOptions)

type clientOptions struct {
	baseURL string
	timeout time.Duration
	http    httpclient.Client
}

// WithBaseURL overrides the default API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) { o.baseURL = baseURL }
}

// WithTimeout sets the transport timeout used when the client builds its own
// transport. Ignored when WithHTTPClient is also given.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

// WithHTTPClient injects a custom transport.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(o *clientOptions) { o.http = hc }
}

// NewClient builds a Tardis API client. The API key must be non-empty;
// callers wanting environment-sourced keys should resolve them in their own
// configuration layer before calling NewClient.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	o := clientOptions{
		baseURL: DefaultBaseURL,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	hc := o.http
	if hc == nil {
		hc = httpclient.NewRestyClient(o.timeout, UserAgent)
	}

	return &Client{
		baseURL: strings.TrimSuffix(o.baseURL, "/"),
		apiKey:  apiKey,
		http:    hc,
	}, nil
}

// BaseURL returns the endpoint this client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Instruments returns all instrument definitions for the given exchange.
// See https://docs.tardis.dev/api/instruments-metadata-api.
func (c *Client) Instruments(ctx context.Context, exchange Exchange) (Response[[]InstrumentInfo], error) {
	return fetch[[]InstrumentInfo](ctx, c, c.baseURL+"/instruments/"+exchange.String())
}

// Instrument returns the instrument definition for the given exchange and
// symbol. The symbol is passed through as given; the API rejects ones it
// cannot route.
func (c *Client) Instrument(ctx context.Context, exchange Exchange, symbol string) (Response[InstrumentInfo], error) {
	return fetch[InstrumentInfo](ctx, c, c.baseURL+"/instruments/"+exchange.String()+"/"+symbol)
}

// fetch performs one authenticated GET and decodes the envelope. Transport
// failures and non-2xx statuses come back as *RequestError, malformed bodies
// as *DecodeError; nothing is retried or logged here.
func fetch[T any](ctx context.Context, c *Client, url string) (Response[T], error) {
	var out Response[T]

	resp, err := c.http.Get(ctx, url, map[string]string{
		"Authorization": "Bearer " + c.apiKey,
		"Accept":        "application/json",
	})
	if err != nil {
		return out, &RequestError{URL: url, Err: err}
	}

	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return out, &RequestError{URL: url, StatusCode: code, Body: resp.Body()}
	}

	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return out, &DecodeError{URL: url, Err: err}
	}
	return out, nil
}

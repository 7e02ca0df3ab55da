package scanner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"SigPull/internal/domain/models"
	drepo "SigPull/internal/domain/repository"
	"SigPull/internal/service/ratelimit"
	xhttp "SigPull/pkg/http"
)

// Client fetches indicator snapshots from the scanner HTTP API. One request
// per symbol; the response is a flat JSON map of field name to value,
// optionally timeframe-qualified ("RSI|15").
type Client struct {
	baseURL   string
	apiKey    string
	timeframe string
	http      *xhttp.Client
	limiter   *ratelimit.Limiter
	rps       float64
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithTimeframe sets the timeframe qualifier requested from the API.
func WithTimeframe(tf string) ClientOption {
	return func(c *Client) {
		if tf != "" {
			c.timeframe = tf
		}
	}
}

// WithRequestTimeout sets the per-request timeout.
func WithRequestTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.http = xhttp.NewClient(xhttp.WithTimeout(d))
	}
}

// WithMaxRPS caps outgoing requests per second across all symbols.
func WithMaxRPS(rps float64) ClientOption {
	return func(c *Client) {
		if rps > 0 {
			c.rps = rps
		}
	}
}

// NewClient creates a scanner API client.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		timeframe: "15",
		http:      xhttp.NewClient(xhttp.WithTimeout(10 * time.Second)),
		limiter:   ratelimit.New(),
		rps:       10,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves one snapshot for symbol. Timeframe qualifiers are stripped
// from the returned keys so the engine sees bare field names.
func (c *Client) Fetch(ctx context.Context, symbol string) (models.MarketSnapshot, error) {
	if !c.limiter.Wait(ctx, "scanner", c.rps, c.rps) {
		return nil, fmt.Errorf("scanner fetch %s: %w", symbol, ctx.Err())
	}

	var raw map[string]interface{}
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/symbols/%s/fields", c.baseURL, symbol),
		Headers: map[string]string{
			"Authorization": "Bearer " + c.apiKey,
		},
		QueryParams: map[string][]string{
			"tf": {c.timeframe},
		},
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("scanner fetch %s: %w", symbol, err)
	}

	return normalizeKeys(raw, c.timeframe), nil
}

// Close satisfies SnapshotSource; the HTTP client holds no resources.
func (c *Client) Close() error { return nil }

// normalizeKeys strips the "|tf" qualifier from field names matching the
// requested timeframe. Unqualified keys pass through as-is.
func normalizeKeys(raw map[string]interface{}, tf string) models.MarketSnapshot {
	out := make(models.MarketSnapshot, len(raw))
	suffix := "|" + tf
	for k, v := range raw {
		if strings.HasSuffix(k, suffix) {
			k = strings.TrimSuffix(k, suffix)
		}
		out[k] = v
	}
	return out
}

var _ drepo.SnapshotSource = (*Client)(nil)

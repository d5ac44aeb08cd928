package bundle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/company/fastapi-configurator/internal/output"
)

const maxResponseSize = 64 << 20 // 64 MB

// Option configures a Client.
type Option func(*Client)

// Client fetches templates.json over HTTP. Each location is fetched once
// and then served from the cache.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	cache      *Cache
	group      singleflight.Group
}

// NewClient creates a new bundle client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		cache:      NewCache(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithBaseURL sets the directory the bundle is served from. A URL that
// already names a .json file is used as is.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithToken sends a bearer token with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout replaces the request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithCache shares a cache between clients.
func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// BundleURL joins base and the bundle file name.
func BundleURL(base string) string {
	if strings.HasSuffix(base, ".json") {
		return base
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + FileName
}

// URL returns the location this client loads from.
func (c *Client) URL() string {
	return BundleURL(c.baseURL)
}

// Load fetches and decodes the bundle. Concurrent callers share a single
// request.
func (c *Client) Load(ctx context.Context) (*Bundle, error) {
	url := c.URL()
	if cached, ok := c.cache.Get(url); ok {
		output.Debug("template bundle served from cache", "url", url)
		return cached, nil
	}

	// The shared fetch outlives any one caller; the HTTP client timeout
	// bounds it instead.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(url, func() (interface{}, error) {
		data, err := c.get(fetchCtx, url)
		if err != nil {
			return nil, err
		}
		b, err := Decode(data)
		if err != nil {
			return nil, &FetchError{Location: url, Err: err}
		}
		c.cache.Set(url, b)
		return b, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			output.Debug("template bundle request shared", "url", url)
		}
		return res.Val.(*Bundle), nil
	}
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Location: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Location: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Location: url, StatusCode: resp.StatusCode}
	}

	ct := resp.Header.Get("Content-Type")
	if strings.Contains(ct, "text/html") {
		return nil, &FetchError{Location: url, Err: fmt.Errorf("received HTML (expected JSON); check the bundle URL")}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, &FetchError{Location: url, Err: fmt.Errorf("reading response: %w", err)}
	}
	if len(data) > maxResponseSize {
		return nil, &FetchError{Location: url, Err: fmt.Errorf("response exceeds %d bytes", maxResponseSize)}
	}

	return data, nil
}

// Decode parses a templates.json document.
func Decode(data []byte) (*Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	if b.Files == nil {
		return nil, fmt.Errorf("parsing %s: missing \"files\" object", FileName)
	}
	return &b, nil
}

// internal/scraper/client.go
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// ClientConfig defines configuration options for the HTTP client.
type ClientConfig struct {
	Timeout   time.Duration
	Delay     time.Duration
	UserAgent string
	Headers   map[string]string
}

// Client is the single reusable network session shared by all fetches within
// one run. It carries fixed browser-like headers, a request timeout, and a
// politeness throttle enforcing the configured delay between requests.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	headers    map[string]string
}

// NewClient creates a client with the specified configuration, filling in
// defaults for anything unset.
func NewClient(config ClientConfig) *Client {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.Delay == 0 {
		config.Delay = time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
	}

	httpClient := &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &Client{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Every(config.Delay), 1),
		userAgent:  config.UserAgent,
		headers:    config.Headers,
	}
}

// GetDocument performs a GET request and parses the response body into a
// goquery document. A non-2xx status is an error; callers treat any error as
// a recoverable per-source failure.
func (c *Client) GetDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setRequestHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return doc, nil
}

// setRequestHeaders configures browser-like request headers.
func (c *Client) setRequestHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("DNT", "1")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
}

// Close releases idle connections held by the client.
func (c *Client) Close() {
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}

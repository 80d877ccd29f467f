// Package ddg provides a client for DuckDuckGo's keyless HTML search
// endpoint. It is the only backend that needs no credentials, which makes
// it the first tier of the search cascade.
package ddg

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Result is a single organic search hit.
type Result struct {
	URL   string
	Title string
}

// Client defines the DuckDuckGo HTML search operation.
type Client interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// APIError is a non-200 response from the endpoint.
type APIError struct {
	Status int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ddg: status %d", e.Status)
}

// StatusCode returns the HTTP status for failure classification.
func (e *APIError) StatusCode() int { return e.Status }

// ErrBlocked signals bot detection (HTTP 202 or an embedded challenge).
var ErrBlocked = eris.New("ddg: bot challenge detected")

var userAgents = []string{
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:109.0) Gecko/20100101 Firefox/109.0",
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL sets a custom endpoint (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a DuckDuckGo HTML client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: "https://html.duckduckgo.com/html/",
		http: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, query string) ([]Result, error) {
	form := url.Values{"q": {query}, "b": {""}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, eris.Wrap(err, "ddg: create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgents[rand.IntN(len(userAgents))])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", "https://html.duckduckgo.com/")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "ddg: request failed")
	}
	defer resp.Body.Close()

	// 202 is DuckDuckGo's bot-detection response, not an accepted request.
	if resp.StatusCode == http.StatusAccepted {
		return nil, ErrBlocked
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "ddg: read response body")
	}

	page := string(body)
	if strings.Contains(strings.ToLower(page), "anomaly") || strings.Contains(page, "challenge-form") {
		return nil, ErrBlocked
	}

	return parseResults(page)
}

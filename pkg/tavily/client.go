// Package tavily provides a client for the Tavily search API. The
// LinkedIn-scoped Search call backs the contact cascade; the unscoped
// WebSearch call backs email domain and pattern discovery, since Tavily
// returns page content snippets alongside URLs.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

// Result is a single search hit with an extracted content snippet.
type Result struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Client defines the Tavily search operations.
type Client interface {
	// Search runs a query restricted to linkedin.com.
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
	// WebSearch runs an unrestricted query.
	WebSearch(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// APIError is a non-200 response from the API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tavily: status %d: %s", e.Status, e.Body)
}

// StatusCode returns the HTTP status for failure classification.
func (e *APIError) StatusCode() int { return e.Status }

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL sets a custom API endpoint (for testing).
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
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Tavily client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: "https://api.tavily.com/search",
		http: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchRequest struct {
	APIKey         string   `json:"api_key"`
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth"`
	IncludeDomains []string `json:"include_domains,omitempty"`
	MaxResults     int      `json:"max_results"`
}

type searchResponse struct {
	Results []Result `json:"results"`
}

func (c *httpClient) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	return c.search(ctx, query, maxResults, []string{"linkedin.com"})
}

func (c *httpClient) WebSearch(ctx context.Context, query string, maxResults int) ([]Result, error) {
	return c.search(ctx, query, maxResults, nil)
}

func (c *httpClient) search(ctx context.Context, query string, maxResults int, domains []string) ([]Result, error) {
	if maxResults <= 0 {
		maxResults = 10
	}
	payload, err := json.Marshal(searchRequest{
		APIKey:         c.apiKey,
		Query:          query,
		SearchDepth:    "basic",
		IncludeDomains: domains,
		MaxResults:     maxResults,
	})
	if err != nil {
		return nil, eris.Wrap(err, "tavily: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL,
		bytes.NewReader(payload))
	if err != nil {
		return nil, eris.Wrap(err, "tavily: create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "tavily: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "tavily: read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "tavily: unmarshal response")
	}
	return parsed.Results, nil
}

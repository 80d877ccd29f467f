// Package googlecse provides a client for the Google Custom Search JSON API.
package googlecse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

// Result is a single organic search hit.
type Result struct {
	URL   string `json:"link"`
	Title string `json:"title"`
}

// Client defines the Custom Search operation.
type Client interface {
	Search(ctx context.Context, query string, num int) ([]Result, error)
}

// APIError is a non-200 response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	switch e.Status {
	case http.StatusTooManyRequests, http.StatusForbidden:
		return fmt.Sprintf("googlecse: quota exhausted or access denied (status %d)", e.Status)
	default:
		return fmt.Sprintf("googlecse: status %d: %s", e.Status, e.Message)
	}
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
	cx      string
	baseURL string
	http    *http.Client
}

// NewClient creates a Custom Search client. cx is the search engine ID.
func NewClient(apiKey, cx string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		cx:      cx,
		baseURL: "https://www.googleapis.com/customsearch/v1",
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Items []Result `json:"items"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *httpClient) Search(ctx context.Context, query string, num int) ([]Result, error) {
	if num <= 0 {
		num = 10
	}
	params := url.Values{
		"key": {c.apiKey},
		"cx":  {c.cx},
		"q":   {query},
		"num": {strconv.Itoa(num)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "googlecse: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "googlecse: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "googlecse: read response body")
	}

	var parsed searchResponse
	if resp.StatusCode != http.StatusOK {
		// Error responses carry a structured message when the body parses.
		_ = json.Unmarshal(body, &parsed)
		return nil, &APIError{Status: resp.StatusCode, Message: parsed.Error.Message}
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "googlecse: unmarshal response")
	}
	return parsed.Items, nil
}

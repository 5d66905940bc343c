package http

import (
	"net/http"
	"net/url"
)

// Client handles HTTP requests with base URL resolution
type Client struct {
	doer    HTTPDoer
	baseURL *url.URL
}

// HTTPDoer interface for making HTTP requests
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewClient creates an HTTP client with any HTTPDoer implementation
func NewClient(baseURL string, doer HTTPDoer) (*Client, error) {
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		doer:    doer,
		baseURL: parsedURL,
	}, nil
}

// BaseURL returns the URL relative requests are resolved against.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// Do performs an HTTP request, prepending base URL
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	newReq := req.Clone(req.Context())
	newReq.URL = c.baseURL.ResolveReference(req.URL)
	newReq.Host = ""

	return c.doer.Do(newReq)
}

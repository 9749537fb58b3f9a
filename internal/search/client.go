package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultEndpoint is the search backend every question is posted to.
const DefaultEndpoint = "http://localhost:8000/search"

// Searcher answers a single question.
type Searcher interface {
	Search(ctx context.Context, question string) (string, error)
}

// Client represents a client for the search backend
type Client struct {
	endpoint *url.URL
	http     *http.Client
}

type Option func(*Client)

// WithEndpoint points the client at another search URL. Invalid URLs are ignored.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		u, err := url.Parse(endpoint)
		if err != nil {
			return
		}
		c.endpoint = u
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// NewClient creates a new search client for DefaultEndpoint
func NewClient(opts ...Option) *Client {
	endpoint, _ := url.Parse(DefaultEndpoint)
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Search posts the raw question as text/plain and returns the answer field
// of the JSON response.
func (c *Client) Search(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyQuestion
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), strings.NewReader(question))
	if err != nil {
		return "", &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &TransportError{Err: unwrapURLError(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", &DecodeError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ServerError{Status: resp.StatusCode, Detail: field(payload, "detail")}
	}
	return field(payload, "answer"), nil
}

// field returns the named member of a decoded JSON object as text. Strings
// are returned as is, other scalars in their JSON form. Missing members,
// null, objects, arrays and non-object payloads yield "".
func field(payload interface{}, name string) string {
	obj, ok := payload.(map[string]interface{})
	if !ok {
		return ""
	}
	switch v := obj[name].(type) {
	case string:
		return v
	case float64, bool:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return ""
	}
}

// unwrapURLError drops the "Post \"http://...\":" prefix net/http adds, so
// the user sees the underlying reason.
func unwrapURLError(err error) error {
	if urlErr, ok := err.(*url.Error); ok && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}

package hn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/zoobzio/bindz/internal/observability"
)

// Event types emitted by Client.
const (
	EventSearchStart    observability.EventType = "hn.search.start"
	EventSearchComplete observability.EventType = "hn.search.complete"
	EventSearchFailed   observability.EventType = "hn.search.failed"
)

// ErrDecode is wrapped by Search when the response body is not a search result.
var ErrDecode = errors.New("decoding search response")

// maxBody bounds how much of a response body is read.
const maxBody = 8 << 20

// HTTPError is returned by Search for non-2xx responses.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("search %s: unexpected status %s", e.URL, e.Status)
}

type searchResponse struct {
	Hits    []Story `json:"hits"`
	Page    int     `json:"page"`
	NbPages int     `json:"nbPages"`
}

// Client performs searches against the upstream search API.
type Client struct {
	endpoint  string
	http      *http.Client
	observer  observability.Observer
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each request, including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithObserver sets the observer receiving search events.
func WithObserver(obs observability.Observer) Option {
	return func(c *Client) {
		if obs != nil {
			c.observer = obs
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a Client for endpoint. An empty endpoint selects
// DefaultEndpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint:  endpoint,
		http:      &http.Client{Timeout: 10 * time.Second},
		observer:  observability.NoOpObserver{},
		userAgent: "hnz",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the API base URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Search issues GET q.URL(endpoint) and returns the decoded hits.
func (c *Client) Search(ctx context.Context, q Query) ([]Story, error) {
	requestID := uuid.New().String()
	target := q.URL(c.endpoint)
	started := time.Now()

	c.emit(ctx, EventSearchStart, observability.LevelVerbose, map[string]any{
		"request_id": requestID,
		"url":        target,
	})

	hits, err := c.do(ctx, target)
	if err != nil {
		c.emit(ctx, EventSearchFailed, observability.LevelWarning, map[string]any{
			"request_id": requestID,
			"url":        target,
			"error":      err.Error(),
			"duration":   time.Since(started),
		})
		return nil, err
	}

	c.emit(ctx, EventSearchComplete, observability.LevelVerbose, map[string]any{
		"request_id": requestID,
		"hits":       len(hits),
		"duration":   time.Since(started),
	})
	return hits, nil
}

func (c *Client) do(ctx context.Context, target string) ([]Story, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, URL: target}
	}

	var body searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if body.Hits == nil {
		return []Story{}, nil
	}
	return body.Hits, nil
}

func (c *Client) emit(ctx context.Context, typ observability.EventType, level observability.Level, data map[string]any) {
	c.observer.OnEvent(ctx, observability.Event{
		Type:      typ,
		Level:     level,
		Timestamp: time.Now(),
		Source:    "hn.Client",
		Data:      data,
	})
}

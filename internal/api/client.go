// Package api is the client for the remote posts API:
//
//	GET  /api/v1/posts  -> 200, JSON array of posts
//	POST /api/v1/posts  -> 2xx, the created post with its assigned id
//
// Every failure of a call (transport, non-2xx status, undecodable body) is
// reported as ErrFetchFailed or ErrSubmitFailed; callers do not distinguish
// network-level from application-level failures.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"postdesk/internal/logging"
	"postdesk/internal/posts"
)

// PostsPath is the collection endpoint, relative to the base URL.
const PostsPath = "/api/v1/posts"

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

var (
	// ErrFetchFailed wraps every failure of ListPosts.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrSubmitFailed wraps every failure of CreatePost.
	ErrSubmitFailed = errors.New("submission failed")
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// PostsAPI is the contract the views depend on.
type PostsAPI interface {
	ListPosts(ctx context.Context) ([]posts.Record, error)
	CreatePost(ctx context.Context, draft posts.Draft) (posts.Record, error)
}

// Client talks to the posts API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ PostsAPI = (*Client)(nil)

// ListPosts fetches the full post collection, in API order.
func (c *Client) ListPosts(ctx context.Context) ([]posts.Record, error) {
	var out []posts.Record
	if err := c.do(ctx, http.MethodGet, nil, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if out == nil {
		out = []posts.Record{}
	}
	return out, nil
}

// CreatePost submits draft and returns the created post.
func (c *Client) CreatePost(ctx context.Context, draft posts.Draft) (posts.Record, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return posts.Record{}, fmt.Errorf("%w: failed to marshal draft: %v", ErrSubmitFailed, err)
	}

	var created posts.Record
	if err := c.do(ctx, http.MethodPost, body, &created); err != nil {
		return posts.Record{}, fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	return created, nil
}

func (c *Client) do(ctx context.Context, method string, body []byte, out interface{}) error {
	reqID := RequestIDFromContext(ctx)
	log := logging.Get(logging.CategoryAPI).With("request_id", reqID)
	url := c.baseURL + PostsPath

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	log.Debug("%s %s", method, url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("%s %s failed after %s: %v", method, url, time.Since(start), err)
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("%s %s returned status %d", method, url, resp.StatusCode)
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		log.Warn("%s %s returned an undecodable body: %v", method, url, err)
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	log.Info("%s %s -> %d in %s", method, url, resp.StatusCode, time.Since(start))
	return nil
}

type requestIDKey struct{}

// WithRequestID attaches a correlation id that the next call sends in
// X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id set by WithRequestID, or a fresh one.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

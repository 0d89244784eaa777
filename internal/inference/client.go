// Package inference talks to the DigitalOcean serverless inference API.
// Jobs are started asynchronously and polled until they reach a terminal
// state.
package inference

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
)

// ErrPollTimeout is returned when a job does not complete within the
// configured polling window.
var ErrPollTimeout = errors.New("inference job polling timed out")

// HTTPError reports a non-2xx response from the inference API.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("inference API returned status %d: %s", e.StatusCode, e.Body)
}

// JobFailedError reports a job that reached a failed terminal state.
type JobFailedError struct {
	Status map[string]any
}

func (e *JobFailedError) Error() string {
	return fmt.Sprintf("inference job failed: %v", e.Status)
}

// Client calls the async-invoke endpoints.
type Client struct {
	baseURL      string
	accessKey    string
	pollInterval time.Duration
	pollTimeout  time.Duration
	httpClient   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithPolling overrides the poll interval and total timeout.
func WithPolling(interval, timeout time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = interval
		c.pollTimeout = timeout
	}
}

// New creates a client for the given async-invoke base URL.
func New(baseURL, accessKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:      baseURL,
		accessKey:    accessKey,
		pollInterval: 2 * time.Second,
		pollTimeout:  60 * time.Second,
		httpClient:   &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StartRequest is the body for starting an async job.
type StartRequest struct {
	ModelID string         `json:"model_id"`
	Input   map[string]any `json:"input"`
	Tags    []string       `json:"tags,omitempty"`
}

// Start submits an async invoke job and returns the request ID. The API
// has used several field names for the ID over time, so all known shapes
// are accepted.
func (c *Client) Start(ctx context.Context, req StartRequest) (string, error) {
	body, err := c.doJSON(ctx, http.MethodPost, c.baseURL, req)
	if err != nil {
		return "", err
	}
	for _, key := range []string{"request_id", "id", "requestId"} {
		if id, ok := body[key].(string); ok && id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("async-invoke response missing request id: %v", body)
}

// Status fetches the current status of a job.
func (c *Client) Status(ctx context.Context, requestID string) (map[string]any, error) {
	return c.doJSON(ctx, http.MethodGet, c.baseURL+"/"+requestID+"/status", nil)
}

// Result fetches the final result of a job.
func (c *Client) Result(ctx context.Context, requestID string) (map[string]any, error) {
	return c.doJSON(ctx, http.MethodGet, c.baseURL+"/"+requestID, nil)
}

// Poll checks job status until it completes, fails, or the poll window
// elapses. On completion it returns the final result document.
func (c *Client) Poll(ctx context.Context, requestID string) (map[string]any, error) {
	deadline := time.Now().Add(c.pollTimeout)
	for {
		status, err := c.Status(ctx, requestID)
		if err != nil {
			return nil, err
		}
		switch jobState(status) {
		case "COMPLETE", "SUCCEEDED", "SUCCESS":
			return c.Result(ctx, requestID)
		case "FAILED", "ERROR":
			return nil, &JobFailedError{Status: status}
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w after %s", ErrPollTimeout, c.pollTimeout)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

// Generate runs the full start-poll-extract flow and returns the image
// bytes with their content type.
func (c *Client) Generate(ctx context.Context, req StartRequest) ([]byte, string, error) {
	requestID, err := c.Start(ctx, req)
	if err != nil {
		return nil, "", err
	}
	result, err := c.Poll(ctx, requestID)
	if err != nil {
		return nil, "", err
	}
	return c.ExtractImage(ctx, result)
}

func jobState(status map[string]any) string {
	for _, key := range []string{"status", "state"} {
		if s, ok := status[key].(string); ok && s != "" {
			return strings.ToUpper(s)
		}
	}
	return ""
}

func (c *Client) doJSON(ctx context.Context, method, url string, payload any) (map[string]any, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return body, nil
}

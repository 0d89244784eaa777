// Package api is the HTTP client for the photosnapd endpoints. Response
// parsing is deliberately defensive: servers mislabel content types and
// return errors in several shapes, and every failure must still resolve
// to a displayable message.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client calls the generation backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// NewClientWithHTTP creates a client with a custom HTTP client.
func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	c := NewClient(baseURL)
	c.httpClient = hc
	return c
}

// Artifact is a generated image together with the prompt that produced it.
type Artifact struct {
	Data        []byte
	ContentType string
	Prompt      string
	CreatedAt   time.Time
}

// Filename derives a download filename from the creation timestamp, with
// the extension chosen from the content type.
func (a *Artifact) Filename() string {
	ext := "png"
	switch {
	case strings.Contains(a.ContentType, "jpeg"), strings.Contains(a.ContentType, "jpg"):
		ext = "jpg"
	case strings.Contains(a.ContentType, "webp"):
		ext = "webp"
	case strings.Contains(a.ContentType, "gif"):
		ext = "gif"
	}
	return fmt.Sprintf("generated_%s.%s", a.CreatedAt.Format("20060102_150405"), ext)
}

// ServerError carries the best displayable message extracted from an
// error response.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// Generate posts the prompt and returns the artifact. Any 2xx body is
// treated as raw image data regardless of the declared content type.
func (c *Client) Generate(ctx context.Context, prompt string) (*Artifact, error) {
	resp, err := c.postJSON(ctx, "/generate", map[string]string{"prompt": prompt})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// The body is buffered exactly once; every parse attempt below works
	// from the same buffer, never from the consumed stream.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServerError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body, resp.StatusCode),
		}
	}

	return &Artifact{
		Data:        body,
		ContentType: resp.Header.Get("Content-Type"),
		Prompt:      prompt,
		CreatedAt:   time.Now(),
	}, nil
}

// UploadResult is the parsed response of /upload-to-spaces.
type UploadResult struct {
	OK       bool   `json:"-"` // HTTP status was 2xx
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Err      string `json:"error"`

	raw []byte
}

// Failed reports whether the upload should be treated as an error.
func (r *UploadResult) Failed() bool {
	return !r.OK || !r.Success
}

// ErrorMessage returns the server's error field, falling back to the
// whole serialized body.
func (r *UploadResult) ErrorMessage() string {
	if r.Err != "" {
		return r.Err
	}
	if len(r.raw) > 0 {
		return string(r.raw)
	}
	return "unknown error"
}

// Upload posts the prompt to /upload-to-spaces and classifies the
// response. JSON is attempted first even when the content type says
// otherwise; unparsable bodies are wrapped into an error result rather
// than returned as a parse failure.
func (c *Client) Upload(ctx context.Context, prompt string) (*UploadResult, error) {
	resp, err := c.postJSON(ctx, "/upload-to-spaces", map[string]string{"prompt": prompt})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	result := &UploadResult{
		OK:  resp.StatusCode >= 200 && resp.StatusCode <= 299,
		raw: body,
	}
	if err := json.Unmarshal(body, result); err != nil {
		// Not JSON at all: keep the raw text as the error message.
		result.Success = false
		result.Err = strings.TrimSpace(string(body))
	}
	return result, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) (*http.Response, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.httpClient.Do(req)
}

// errorMessage extracts the most useful message from an error body:
// the JSON error field, then the whole JSON document, then the raw text,
// then a status-derived placeholder.
func errorMessage(body []byte, status int) string {
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err == nil {
		if msg, ok := doc["error"].(string); ok && msg != "" {
			return msg
		}
		if serialized, err := json.Marshal(doc); err == nil {
			return string(serialized)
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fmt.Sprintf("request failed with status %d", status)
}

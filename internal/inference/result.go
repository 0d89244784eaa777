package inference

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrNoImage is returned when a result document contains neither image
// bytes nor anything resolvable to them.
var ErrNoImage = errors.New("no image found in inference result")

// ExtractImage locates image bytes in a job result. Result shapes vary by
// model: a top-level url, an output array whose first item carries a url
// or base64 payload, or a url buried somewhere in a nested structure.
// URLs are fetched; base64 payloads are decoded.
func (c *Client) ExtractImage(ctx context.Context, result map[string]any) ([]byte, string, error) {
	if url, ok := result["url"].(string); ok && url != "" {
		return c.fetchImage(ctx, url)
	}

	if item := firstOutputItem(result); item != nil {
		if url, ok := item["url"].(string); ok && url != "" {
			return c.fetchImage(ctx, url)
		}
		for _, key := range []string{"base64", "b64", "image"} {
			if enc, ok := item[key].(string); ok && enc != "" {
				data, err := base64.StdEncoding.DecodeString(enc)
				if err != nil {
					return nil, "", fmt.Errorf("decode %s payload: %w", key, err)
				}
				return data, "image/png", nil
			}
		}
	}

	if url := findFirstURL(result); url != "" {
		return c.fetchImage(ctx, url)
	}
	return nil, "", ErrNoImage
}

func firstOutputItem(result map[string]any) map[string]any {
	for _, key := range []string{"output", "outputs", "results"} {
		list, ok := result[key].([]any)
		if !ok || len(list) == 0 {
			continue
		}
		if item, ok := list[0].(map[string]any); ok {
			return item
		}
	}
	return nil
}

// findFirstURL walks the document depth-first and returns the first
// string value that looks like an http(s) URL.
func findFirstURL(v any) string {
	switch val := v.(type) {
	case map[string]any:
		for _, child := range val {
			if s, ok := child.(string); ok && strings.HasPrefix(s, "http") {
				return s
			}
			if found := findFirstURL(child); found != "" {
				return found
			}
		}
	case []any:
		for _, child := range val {
			if found := findFirstURL(child); found != "" {
				return found
			}
		}
	}
	return ""
}

func (c *Client) fetchImage(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &HTTPError{StatusCode: resp.StatusCode, Body: "image download failed"}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	return data, contentType, nil
}

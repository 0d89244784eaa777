package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastClient(baseURL string) *Client {
	return New(baseURL, "test-key", WithPolling(time.Millisecond, 200*time.Millisecond))
}

func TestStart_AcceptsAllRequestIDShapes(t *testing.T) {
	for _, tc := range []struct {
		name string
		body string
	}{
		{"snake_case", `{"request_id": "job-1"}`},
		{"bare_id", `{"id": "job-1"}`},
		{"camelCase", `{"requestId": "job-1"}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			id, err := fastClient(srv.URL).Start(context.Background(), StartRequest{
				ModelID: "fal-ai/flux/schnell",
				Input:   map[string]any{"prompt": "a cat"},
			})
			require.NoError(t, err)
			assert.Equal(t, "job-1", id)
		})
	}
}

func TestStart_MissingRequestID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected": true}`))
	}))
	defer srv.Close()

	_, err := fastClient(srv.URL).Start(context.Background(), StartRequest{ModelID: "m"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing request id")
}

func TestPoll_CompletesAfterRunning(t *testing.T) {
	var polls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/job-1/status", func(w http.ResponseWriter, r *http.Request) {
		if polls.Add(1) < 3 {
			json.NewEncoder(w).Encode(map[string]any{"status": "RUNNING"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"status": "complete"})
	})
	mux.HandleFunc("/job-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"url": "https://img.example/x.png"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	result, err := fastClient(srv.URL).Poll(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/x.png", result["url"])
	assert.GreaterOrEqual(t, polls.Load(), int32(3))
}

func TestPoll_FailedState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"state": "FAILED", "reason": "oom"})
	}))
	defer srv.Close()

	_, err := fastClient(srv.URL).Poll(context.Background(), "job-1")
	var jobErr *JobFailedError
	require.ErrorAs(t, err, &jobErr)
	assert.Equal(t, "oom", jobErr.Status["reason"])
}

func TestPoll_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "RUNNING"})
	}))
	defer srv.Close()

	c := New(srv.URL, "k", WithPolling(time.Millisecond, 10*time.Millisecond))
	_, err := c.Poll(context.Background(), "job-1")
	require.ErrorIs(t, err, ErrPollTimeout)
}

func TestPoll_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "RUNNING"})
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := New(srv.URL, "k", WithPolling(50*time.Millisecond, time.Minute))
	_, err := c.Poll(ctx, "job-1")
	require.ErrorIs(t, err, context.Canceled)
}

func TestStatus_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such job", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := fastClient(srv.URL).Status(context.Background(), "missing")
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
}

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SuccessReturnsArtifact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("binary-image-data"))
	}))
	defer srv.Close()

	artifact, err := NewClient(srv.URL).Generate(context.Background(), "a fox")
	require.NoError(t, err)
	assert.Equal(t, []byte("binary-image-data"), artifact.Data)
	assert.Equal(t, "image/png", artifact.ContentType)
	assert.Equal(t, "a fox", artifact.Prompt)
}

func TestGenerate_SuccessIgnoresDeclaredContentType(t *testing.T) {
	// A 2xx body is image data even when the server labels it text.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer srv.Close()

	artifact, err := NewClient(srv.URL).Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, artifact.Data)
}

func TestGenerate_JSONErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "boom"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Generate(context.Background(), "p")
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, "boom", serverErr.Message)
	assert.Equal(t, http.StatusInternalServerError, serverErr.StatusCode)
}

func TestGenerate_JSONWithoutErrorFieldSerializesWholeBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"detail": "upstream exploded"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Generate(context.Background(), "p")
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Contains(t, serverErr.Message, "upstream exploded")
}

func TestGenerate_PlainTextErrorFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("plain failure"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Generate(context.Background(), "p")
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, "plain failure", serverErr.Message)
}

func TestGenerate_EmptyErrorBodyUsesStatusPlaceholder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Generate(context.Background(), "p")
	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Contains(t, serverErr.Message, "400")
}

func TestGenerate_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	_, err := NewClient(srv.URL).Generate(context.Background(), "p")
	require.Error(t, err)
	var serverErr *ServerError
	assert.False(t, errors.As(err, &serverErr), "transport errors are not server errors")
}

func TestUpload_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload-to-spaces", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "url": "https://x/y.png", "filename": "y.png"}`))
	}))
	defer srv.Close()

	result, err := NewClient(srv.URL).Upload(context.Background(), "p")
	require.NoError(t, err)
	assert.False(t, result.Failed())
	assert.Equal(t, "https://x/y.png", result.URL)
	assert.Equal(t, "y.png", result.Filename)
}

func TestUpload_MislabeledJSONStillParsed(t *testing.T) {
	// Servers sometimes send JSON with a text content type; the JSON
	// parse is attempted regardless.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(`{"success": true, "url": "https://x/z.png"}`))
	}))
	defer srv.Close()

	result, err := NewClient(srv.URL).Upload(context.Background(), "p")
	require.NoError(t, err)
	assert.False(t, result.Failed())
	assert.Equal(t, "https://x/z.png", result.URL)
}

func TestUpload_SuccessFalseWithError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error": "denied"}`))
	}))
	defer srv.Close()

	result, err := NewClient(srv.URL).Upload(context.Background(), "p")
	require.NoError(t, err)
	assert.True(t, result.Failed())
	assert.Equal(t, "denied", result.ErrorMessage())
}

func TestUpload_Non2xxIsFailureEvenWithSuccessTrue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	result, err := NewClient(srv.URL).Upload(context.Background(), "p")
	require.NoError(t, err)
	assert.True(t, result.Failed())
}

func TestUpload_UnparsableBodyWrappedAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer srv.Close()

	result, err := NewClient(srv.URL).Upload(context.Background(), "p")
	require.NoError(t, err)
	assert.True(t, result.Failed())
	assert.Equal(t, "<html>gateway error</html>", result.ErrorMessage())
}

func TestUpload_ErrorMessageFallsBackToSerializedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"success": false, "reason": "quota"}`))
	}))
	defer srv.Close()

	result, err := NewClient(srv.URL).Upload(context.Background(), "p")
	require.NoError(t, err)
	assert.True(t, result.Failed())
	assert.Contains(t, result.ErrorMessage(), "quota")
}

func TestArtifactFilename(t *testing.T) {
	created := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	for _, tc := range []struct {
		contentType string
		want        string
	}{
		{"image/png", "generated_20260314_150926.png"},
		{"image/jpeg", "generated_20260314_150926.jpg"},
		{"image/webp", "generated_20260314_150926.webp"},
		{"image/gif", "generated_20260314_150926.gif"},
		{"application/octet-stream", "generated_20260314_150926.png"},
		{"", "generated_20260314_150926.png"},
	} {
		a := &Artifact{ContentType: tc.contentType, CreatedAt: created}
		assert.Equal(t, tc.want, a.Filename(), tc.contentType)
	}
}

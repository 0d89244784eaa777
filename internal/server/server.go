// Package server exposes the photosnapd HTTP API: image generation,
// Spaces upload, health, and metrics.
package server

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"photosnap/internal/inference"
)

// Generator produces image bytes for a generation request.
type Generator interface {
	Generate(ctx context.Context, req inference.StartRequest) ([]byte, string, error)
}

// Uploader stores image bytes and returns a public URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, key string) (string, error)
}

// Server holds the handler dependencies.
type Server struct {
	generator    Generator
	uploader     Uploader
	defaultModel string
}

// New creates a Server with its collaborators.
func New(generator Generator, uploader Uploader, defaultModel string) *Server {
	if defaultModel == "" {
		defaultModel = "fal-ai/flux/schnell"
	}
	return &Server{generator: generator, uploader: uploader, defaultModel: defaultModel}
}

// Router builds the gin engine with the full middleware chain.
func (s *Server) Router() *gin.Engine {
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		RequestID(),
		AccessLog(),
		Metrics(),
		otelgin.Middleware("photosnapd"),
		cors.Default(),
	)

	engine.POST("/generate", s.handleGenerate)
	engine.POST("/upload-to-spaces", s.handleUpload)
	engine.GET("/health", s.handleHealth)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return engine
}

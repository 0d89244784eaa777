package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"photosnap/internal/inference"
	"photosnap/internal/metrics"
	"photosnap/internal/spaces"
)

// generateRequest is the JSON body accepted by /generate and
// /upload-to-spaces.
type generateRequest struct {
	Prompt  string         `json:"prompt"`
	ModelID string         `json:"model_id"`
	Options map[string]any `json:"options"`
}

func (s *Server) handleGenerate(c *gin.Context) {
	req, ok := s.bindGenerateRequest(c)
	if !ok {
		return
	}

	start := time.Now()
	data, contentType, err := s.generator.Generate(c.Request.Context(), req)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("error").Inc()
		s.writeGenerationError(c, err)
		return
	}
	metrics.GenerationsTotal.WithLabelValues("success").Inc()
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())

	if contentType == "" {
		contentType = "image/png"
	}
	c.Data(http.StatusOK, contentType, data)
}

func (s *Server) handleUpload(c *gin.Context) {
	req, ok := s.bindGenerateRequest(c)
	if !ok {
		return
	}

	data, _, err := s.generator.Generate(c.Request.Context(), req)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("error").Inc()
		s.writeGenerationError(c, err)
		return
	}
	metrics.GenerationsTotal.WithLabelValues("success").Inc()

	prompt, _ := req.Input["prompt"].(string)
	key := spaces.ObjectKey(prompt, time.Now())
	url, err := s.uploader.Upload(c.Request.Context(), data, key)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		log.Error().Err(err).Str("key", key).Msg("Spaces upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to upload image to DigitalOcean Spaces",
		})
		return
	}
	metrics.UploadsTotal.WithLabelValues("success").Inc()

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Image uploaded successfully to DigitalOcean Spaces",
		"url":      url,
		"filename": key,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// bindGenerateRequest parses and validates the request body, writing the
// error response itself on failure.
func (s *Server) bindGenerateRequest(c *gin.Context) (inference.StartRequest, bool) {
	var body generateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return inference.StartRequest{}, false
	}
	if body.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
		return inference.StartRequest{}, false
	}

	modelID := body.ModelID
	if modelID == "" {
		modelID = s.defaultModel
	}
	input := map[string]any{"prompt": body.Prompt}
	for k, v := range body.Options {
		input[k] = v
	}
	return inference.StartRequest{ModelID: modelID, Input: input}, true
}

// writeGenerationError maps generation failures to the HTTP statuses the
// web client expects: 504 for poll timeouts, 502 for upstream HTTP
// failures, 500 otherwise.
func (s *Server) writeGenerationError(c *gin.Context, err error) {
	log.Error().Err(err).Msg("Image generation failed")

	var httpErr *inference.HTTPError
	switch {
	case errors.Is(err, inference.ErrPollTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{
			"error":   "Inference job timed out",
			"details": err.Error(),
		})
	case errors.As(err, &httpErr):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "HTTP error during inference",
			"details": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate image",
			"details": err.Error(),
		})
	}
}

// Package spaces uploads generated images to DigitalOcean Spaces through
// its S3-compatible API.
package spaces

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// putObjectAPI is the slice of the S3 client the uploader needs.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader puts objects into a single Spaces bucket and derives their
// public URLs.
type Uploader struct {
	client putObjectAPI
	bucket string
	region string
}

// Config holds the credentials and bucket coordinates for Spaces.
type Config struct {
	Bucket   string
	Region   string
	Endpoint string
	Key      string
	Secret   string
}

// New builds an uploader backed by a real S3 client pointed at the
// Spaces endpoint.
func New(ctx context.Context, cfg Config) (*Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.Key, cfg.Secret, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("configure spaces client: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
	})
	return &Uploader{client: client, bucket: cfg.Bucket, region: cfg.Region}, nil
}

// NewWithClient builds an uploader around an existing client. Used by
// tests.
func NewWithClient(client putObjectAPI, bucket, region string) *Uploader {
	return &Uploader{client: client, bucket: bucket, region: region}
}

// Upload puts image bytes under key with public-read ACL and returns the
// public URL.
func (u *Uploader) Upload(ctx context.Context, data []byte, key string) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/png"),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("upload to spaces: %w", err)
	}
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", u.bucket, u.region, key), nil
}

// ObjectKey derives a bucket key from the prompt: a sanitized prompt
// prefix, a timestamp, and a short unique suffix.
func ObjectKey(prompt string, now time.Time) string {
	safe := sanitizePrompt(prompt)
	timestamp := now.Format("20060102_150405")
	uniqueID := uuid.NewString()[:8]
	return fmt.Sprintf("generated_images/%s_%s_%s.png", safe, timestamp, uniqueID)
}

// sanitizePrompt keeps the first 30 characters, drops everything but
// letters, digits, spaces, dashes and underscores, then replaces spaces
// with underscores.
func sanitizePrompt(prompt string) string {
	if len(prompt) > 30 {
		prompt = prompt[:30]
	}
	var b strings.Builder
	for _, r := range prompt {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	trimmed := strings.TrimRight(b.String(), " ")
	return strings.ReplaceAll(trimmed, " ", "_")
}

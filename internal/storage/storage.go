package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrBucketNotConfigured is returned by S3 operations when no bucket is set.
var ErrBucketNotConfigured = errors.New("S3 bucket is not configured. Please set S3_BUCKET_NAME or AWS_S3_BUCKET.")

// Object describes a stored file as returned by List.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Storage defines the file operations used by upload, portfolio and banner endpoints.
type Storage interface {
	// Put stores the body under key.
	Put(ctx context.Context, key string, body io.Reader, contentType string) error

	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// List returns every object whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]Object, error)

	// URL returns the public URL for key.
	URL(key string) string
}

// Config holds storage configuration
type Config struct {
	Type          string // s3 or local
	BasePath      string // For local storage
	PublicBaseURL string // Overrides the derived public URL
	Bucket        string
	Region        string
	AccessKey     string
	SecretKey     string
	Endpoint      string // S3-compatible endpoint (R2, MinIO)
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "s3":
		return NewS3Storage(cfg)
	case "local":
		return NewLocalStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// ObjectStore abstracts the object storage backend for course materials.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, data io.Reader) error
	SignedURL(key string, expires time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

// GCSConfig holds configuration for the Google Cloud Storage backend.
type GCSConfig struct {
	BucketName      string
	CredentialsFile string
}

type gcsStore struct {
	client *gcs.Client
	bucket string
	logger *slog.Logger
}

// NewGCSStore creates an object store backed by a GCS bucket.
func NewGCSStore(ctx context.Context, config GCSConfig, logger *slog.Logger) (ObjectStore, error) {
	if config.BucketName == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	var opts []option.ClientOption
	if config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.CredentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &gcsStore{
		client: client,
		bucket: config.BucketName,
		logger: logger,
	}, nil
}

func (s *gcsStore) Upload(ctx context.Context, key, contentType string, data io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}

	if _, err := io.Copy(w, data); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize object %s: %w", key, err)
	}

	s.logger.Debug("uploaded object", "bucket", s.bucket, "key", key)

	return nil
}

// SignedURL issues a time-limited V4 download URL for an object. No storage
// round trip is made; signing is local to the client credentials.
func (s *gcsStore) SignedURL(key string, expires time.Duration) (string, error) {
	url, err := s.client.Bucket(s.bucket).SignedURL(key, &gcs.SignedURLOptions{
		Scheme:  gcs.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(expires),
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign url for %s: %w", key, err)
	}

	return url, nil
}

func (s *gcsStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Bucket(s.bucket).Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}

	s.logger.Debug("deleted object", "bucket", s.bucket, "key", key)

	return nil
}

func (s *gcsStore) Close() error {
	return s.client.Close()
}

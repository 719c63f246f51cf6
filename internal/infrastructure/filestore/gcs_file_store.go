package filestore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"trade_portal/internal/usecase/interfaces"

	"cloud.google.com/go/storage"
	"github.com/rs/zerolog"
)

var ErrInvalidObjectPath = errors.New("invalid object path")

// GCSFileStore keeps payment proofs and quote documents in private GCS
// buckets. Files are never public; readers get V4 signed URLs.
//
// It assumes the client is authenticated (e.g. via GOOGLE_APPLICATION_CREDENTIALS).
type GCSFileStore struct {
	client *storage.Client
	log    zerolog.Logger
}

var _ interfaces.IFileStore = (*GCSFileStore)(nil)

func NewGCSFileStore(ctx context.Context, log zerolog.Logger) (*GCSFileStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	return &GCSFileStore{client: client, log: log.With().Str("component", "gcs_file_store").Logger()}, nil
}

func (s *GCSFileStore) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (interfaces.StoredFile, error) {
	if err := validateObject(bucket, path); err != nil {
		return interfaces.StoredFile{}, err
	}

	w := s.client.Bucket(bucket).Object(path).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return interfaces.StoredFile{}, fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return interfaces.StoredFile{}, fmt.Errorf("failed to write object: %w", err)
	}

	s.log.Info().Str("bucket", bucket).Str("path", path).Int("size", len(data)).Msg("object uploaded")
	return interfaces.StoredFile{Bucket: bucket, Path: path}, nil
}

func (s *GCSFileStore) SignedURL(_ context.Context, bucket, path string, ttl time.Duration) (string, error) {
	if err := validateObject(bucket, path); err != nil {
		return "", err
	}

	url, err := s.client.Bucket(bucket).SignedURL(path, signedURLOptions(ttl, time.Now()))
	if err != nil {
		return "", fmt.Errorf("failed to sign url: %w", err)
	}
	return url, nil
}

func (s *GCSFileStore) Close() error {
	return s.client.Close()
}

func signedURLOptions(ttl time.Duration, now time.Time) *storage.SignedURLOptions {
	return &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: now.Add(ttl),
	}
}

func validateObject(bucket, path string) error {
	if strings.TrimSpace(bucket) == "" || strings.TrimSpace(path) == "" {
		return ErrInvalidObjectPath
	}
	if strings.HasPrefix(path, "/") || strings.Contains(path, "..") {
		return ErrInvalidObjectPath
	}
	return nil
}

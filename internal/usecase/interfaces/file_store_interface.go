package interfaces

import (
	"context"
	"time"
)

// StoredFile identifies an uploaded object.
type StoredFile struct {
	Bucket string
	Path   string
}

// IFileStore abstracts the blob store holding payment proofs and quote documents.
// Buckets are private; files are read through signed URLs only.
type IFileStore interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (StoredFile, error)
	SignedURL(ctx context.Context, bucket, path string, ttl time.Duration) (string, error)
}

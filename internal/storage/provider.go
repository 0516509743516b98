package storage

import (
	"context"
	"io"
	"time"
)

// Provider is the object-storage contract the media layer depends on.
// Uploaded objects are private; reads go through presigned URLs only.
type Provider interface {
	Upload(ctx context.Context, key string, content io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	SignedURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)
}

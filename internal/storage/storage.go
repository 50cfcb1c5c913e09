package storage

import (
	"context"
	"io"
)

// Storage persists uploaded receipts and hands back a public URL for each.
// Paths are opaque keys chosen by the caller.
type Storage interface {
	Upload(ctx context.Context, path string, content io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, path string) error
	PublicURL(path string) string
}

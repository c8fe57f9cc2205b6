// Package blobstore abstracts where uploaded PDFs live. The S3 backend
// is the production target; the local backend serves development and
// tests without credentials.
package blobstore

import (
	"context"
	"io"
)

// PutOptions carries optional metadata for an upload.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

// Store is the blob backend contract. Keys are slash-separated paths
// chosen by the caller; URL must be stable for a given key.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

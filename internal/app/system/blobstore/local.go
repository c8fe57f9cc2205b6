package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes blobs under a root directory. Keys map directly to
// relative paths; path traversal in a key is rejected.
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocal builds a filesystem-backed store rooted at root. baseURL is
// prepended to keys by URL (e.g. http://localhost:8080/uploads).
func NewLocal(root, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating blob root: %w", err)
	}
	return &LocalStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (l *LocalStore) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(l.root, clean), nil
}

func (l *LocalStore) Put(ctx context.Context, key string, r io.Reader, _ PutOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("creating blob dir: %w", err)
	}

	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("creating blob file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(p)
		return fmt.Errorf("writing blob: %w", err)
	}
	return f.Close()
}

func (l *LocalStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting blob: %w", err)
	}
	return nil
}

func (l *LocalStore) URL(key string) string {
	return l.baseURL + "/" + key
}

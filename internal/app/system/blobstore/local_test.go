package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStore_PutDelete(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "http://localhost:8080/uploads")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	ctx := context.Background()

	key := "algorithms/20250901_093000_notes.pdf"
	if err := store.Put(ctx, key, strings.NewReader("%PDF-1.4 data"), PutOptions{ContentType: "application/pdf"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(store.root, "algorithms", "20250901_093000_notes.pdf"))
	if err != nil {
		t.Fatalf("reading stored blob: %v", err)
	}
	if string(b) != "%PDF-1.4 data" {
		t.Errorf("blob content = %q", b)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.root, "algorithms", "20250901_093000_notes.pdf")); !os.IsNotExist(err) {
		t.Error("expected blob to be gone after Delete")
	}
}

func TestLocalStore_DeleteMissingIsNoop(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "http://localhost")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	if err := store.Delete(context.Background(), "no/such/key.pdf"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "http://localhost")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	if err := store.Put(context.Background(), "../escape.pdf", strings.NewReader("x"), PutOptions{}); err == nil {
		t.Error("expected traversal key to be rejected")
	}
}

func TestLocalStore_URL(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "http://localhost:8080/uploads/")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	got := store.URL("algorithms/file.pdf")
	if got != "http://localhost:8080/uploads/algorithms/file.pdf" {
		t.Errorf("URL = %q", got)
	}
}

func TestS3Store_URL(t *testing.T) {
	s := &S3Store{bucket: "campushub-files", region: "ap-south-1"}
	got := s.URL("algorithms/file.pdf")
	want := "https://campushub-files.s3.ap-south-1.amazonaws.com/algorithms/file.pdf"
	if got != want {
		t.Errorf("URL = %q, want %q", got, want)
	}
}

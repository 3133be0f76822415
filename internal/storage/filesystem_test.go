package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreWriteAndSanitize(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}

	key, err := store.Write(context.Background(), "generated_image/test.png", []byte{0x89, 0x50})
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if key != "generated_image/test.png" {
		t.Fatalf("Write key = %q", key)
	}
	data, err := os.ReadFile(filepath.Join(dir, "generated_image", "test.png"))
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if len(data) != 2 {
		t.Fatalf("unexpected file contents: %v", data)
	}
}

func TestFileStoreRejectsTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	if _, err := store.Write(context.Background(), "../escape.png", []byte("x")); err == nil {
		t.Fatalf("Write expected traversal error")
	}
	if _, err := store.Write(context.Background(), "", []byte("x")); err == nil {
		t.Fatalf("Write expected empty key error")
	}
}

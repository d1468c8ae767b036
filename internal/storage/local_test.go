package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func newTestLocal(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(&LocalConfig{
		Dir:       t.TempDir(),
		PublicURL: "http://localhost:8080/static/memes/",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.EnsureBucket(context.Background()); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestLocalStorageRoundTrip(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()
	payload := []byte("jpeg-bytes")

	if err := s.Upload(ctx, "drake_20250101_abc123.jpg", bytes.NewReader(payload), int64(len(payload)), "image/jpeg"); err != nil {
		t.Fatalf("upload: %v", err)
	}

	exists, err := s.Exists(ctx, "drake_20250101_abc123.jpg")
	if err != nil || !exists {
		t.Fatalf("exists: %v, %v", exists, err)
	}

	rc, err := s.Download(ctx, "drake_20250101_abc123.jpg")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	defer rc.Close()
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("got %q, want %q", got, payload)
	}

	if err := s.Delete(ctx, "drake_20250101_abc123.jpg"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	exists, err = s.Exists(ctx, "drake_20250101_abc123.jpg")
	if err != nil || exists {
		t.Errorf("object still exists after delete")
	}
}

func TestLocalStorageGetURL(t *testing.T) {
	s := newTestLocal(t)
	url := s.GetURL("foo.jpg")
	if url != "http://localhost:8080/static/memes/foo.jpg" {
		t.Errorf("got %q", url)
	}
}

func TestLocalStorageRejectsEscapingKeys(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()

	for _, key := range []string{"../outside.jpg", "/etc/passwd", ".."} {
		err := s.Upload(ctx, key, strings.NewReader("x"), 1, "image/jpeg")
		if err == nil {
			t.Errorf("key %q: expected rejection", key)
		}
	}
}

func TestNewStorageFactory(t *testing.T) {
	s, err := NewStorage(&Config{Type: "local", Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*LocalStorage); !ok {
		t.Errorf("expected LocalStorage, got %T", s)
	}

	if _, err := NewStorage(&Config{Type: "gopher-drive"}); err == nil {
		t.Error("expected error for unknown storage type")
	}
}

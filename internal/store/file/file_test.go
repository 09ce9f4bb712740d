package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := New(dir)

	if _, ok, err := s.Get(ctx, "expenses"); ok || err != nil {
		t.Fatalf("expected absent key on empty dir, ok=%v err=%v", ok, err)
	}

	if err := s.Put(ctx, "expenses", []byte(`[{"name":"Coffee","amount":3.5}]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "expenses.json")); err != nil {
		t.Fatalf("expected file on disk: %v", err)
	}

	got, ok, err := s.Get(ctx, "expenses")
	if err != nil || !ok || string(got) != `[{"name":"Coffee","amount":3.5}]` {
		t.Fatalf("unexpected get: %q ok=%v err=%v", got, ok, err)
	}

	if err := s.Put(ctx, "expenses", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _, _ = s.Get(ctx, "expenses")
	if string(got) != "[]" {
		t.Fatalf("expected overwritten value, got %q", got)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected only the data file, found %d entries", len(entries))
	}

	if err := s.Delete(ctx, "expenses"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "expenses"); ok {
		t.Fatalf("expected key removed")
	}
	if err := s.Delete(ctx, "expenses"); err != nil {
		t.Fatalf("delete of absent key: %v", err)
	}
}

func TestFileStoreRejectsPathKeys(t *testing.T) {
	s := New(t.TempDir())
	for _, key := range []string{"", "../x", "a/b", `a\b`, ".."} {
		if err := s.Put(context.Background(), key, []byte("[]")); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
}

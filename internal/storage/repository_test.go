package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestRepo(t *testing.T, path string) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepositoryKV(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t, filepath.Join(t.TempDir(), "data", "tracker.db"))

	if _, ok, err := repo.Get(ctx, "expenses"); ok || err != nil {
		t.Fatalf("expected absent key, ok=%v err=%v", ok, err)
	}

	if err := repo.Put(ctx, "expenses", []byte(`[{"name":"Coffee","amount":3.5}]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Put(ctx, "expenses", []byte(`[{"name":"Book","amount":12.99}]`)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, ok, err := repo.Get(ctx, "expenses")
	if err != nil || !ok || string(got) != `[{"name":"Book","amount":12.99}]` {
		t.Fatalf("unexpected get: %q ok=%v err=%v", got, ok, err)
	}

	if err := repo.Delete(ctx, "expenses"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, "expenses"); ok {
		t.Fatalf("expected key removed")
	}
	if err := repo.Delete(ctx, "expenses"); err != nil {
		t.Fatalf("delete of absent key: %v", err)
	}
}

func TestSQLiteRepositoryPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tracker.db")

	repo, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := repo.Put(ctx, "expenses", []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	repo.Close()

	// Reopening runs migrations again; they must be a no-op.
	repo = newTestRepo(t, path)
	got, ok, err := repo.Get(ctx, "expenses")
	if err != nil || !ok || string(got) != "[]" {
		t.Fatalf("unexpected get after reopen: %q ok=%v err=%v", got, ok, err)
	}
}

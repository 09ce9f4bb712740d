package store

import (
	"context"
	"errors"
	"testing"

	"tracker/internal/core"
	"tracker/internal/store/memory"
)

type failingBackend struct{ err error }

func (f failingBackend) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingBackend) Put(context.Context, string, []byte) error         { return f.err }
func (f failingBackend) Delete(context.Context, string) error              { return f.err }

func TestLoadAbsentKeyIsEmpty(t *testing.T) {
	a := NewAdapter(memory.New(), "")
	items := a.Load(context.Background())
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", items)
	}
	if a.Key() != DefaultKey {
		t.Fatalf("expected default key, got %q", a.Key())
	}
}

func TestLoadCorruptValueIsEmpty(t *testing.T) {
	for _, raw := range []string{`not json`, `{"name":"a"}`, `null`, `"text"`, `[1,2]`, `[{"name":"a","amount":"abc"}]`} {
		a := NewAdapter(memory.NewWithValue(DefaultKey, []byte(raw)), DefaultKey)
		if items := a.Load(context.Background()); len(items) != 0 {
			t.Fatalf("%s: expected empty list, got %+v", raw, items)
		}
	}
}

func TestLoadBackendErrorIsEmpty(t *testing.T) {
	a := NewAdapter(failingBackend{err: errors.New("disk gone")}, DefaultKey)
	if items := a.Load(context.Background()); len(items) != 0 {
		t.Fatalf("expected empty list, got %+v", items)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(memory.New(), DefaultKey)
	in := []core.Expense{
		{ID: "1", Name: "Coffee", Amount: core.Money{Cents: 350}},
		{ID: "2", Name: "Book", Amount: core.Money{Cents: 1299}},
		{ID: "3", Name: "Rent", Amount: core.Money{Cents: 100000}},
	}
	if err := a.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out := a.Load(ctx)
	if len(out) != len(in) {
		t.Fatalf("expected %d records, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i].Name != in[i].Name || out[i].Amount != in[i].Amount {
			t.Fatalf("record %d: expected %+v, got %+v", i, in[i], out[i])
		}
		if out[i].ID != "" {
			t.Fatalf("record %d: ids are not stored, got %q", i, out[i].ID)
		}
	}
}

func TestClearRemovesKey(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	a := NewAdapter(mem, DefaultKey)
	if err := a.Save(ctx, []core.Expense{{Name: "a", Amount: core.Money{Cents: 1}}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := a.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if mem.Has(DefaultKey) {
		t.Fatalf("expected key removed")
	}
}

func TestSaveWrapsBackendError(t *testing.T) {
	boom := errors.New("boom")
	a := NewAdapter(failingBackend{err: boom}, DefaultKey)
	if err := a.Save(context.Background(), nil); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
	if err := a.Clear(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
}

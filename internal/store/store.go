// Package store is the persistence boundary of the ledger: one serialized
// list under one key of a key/value backend.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"tracker/internal/core"
)

// DefaultKey is the key the ledger is stored under.
const DefaultKey = "expenses"

// Ports for key/value backends.
type (
	Backend interface {
		// Get returns the value under key; ok is false when the key is absent.
		Get(ctx context.Context, key string) (value []byte, ok bool, err error)
		// Put overwrites the value under key.
		Put(ctx context.Context, key string, value []byte) error
		// Delete removes key. Deleting an absent key is not an error.
		Delete(ctx context.Context, key string) error
	}

	// Store loads, saves and clears the whole ledger.
	Store interface {
		Load(ctx context.Context) []core.Expense
		Save(ctx context.Context, items []core.Expense) error
		Clear(ctx context.Context) error
	}
)

// Adapter implements Store on top of a Backend and a fixed key.
type Adapter struct {
	backend Backend
	key     string
}

func NewAdapter(backend Backend, key string) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	return &Adapter{backend: backend, key: key}
}

// Key returns the storage key in use.
func (a *Adapter) Key() string {
	return a.key
}

// Load returns the stored records. An absent key, a read failure or a value
// that does not decode as a list all yield an empty list.
func (a *Adapter) Load(ctx context.Context) []core.Expense {
	raw, ok, err := a.backend.Get(ctx, a.key)
	if err != nil {
		slog.WarnContext(ctx, "Ledger load failed, starting empty", "key", a.key, "error", err)
		return []core.Expense{}
	}
	if !ok {
		return []core.Expense{}
	}
	items, err := Decode(raw)
	if err != nil {
		slog.WarnContext(ctx, "Stored ledger is not a valid list, starting empty", "key", a.key, "error", err)
		return []core.Expense{}
	}
	return items
}

// Save serializes the full list and overwrites the stored value.
func (a *Adapter) Save(ctx context.Context, items []core.Expense) error {
	raw, err := Encode(items)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := a.backend.Put(ctx, a.key, raw); err != nil {
		return fmt.Errorf("put %s: %w", a.key, err)
	}
	return nil
}

// Clear removes the key entirely.
func (a *Adapter) Clear(ctx context.Context) error {
	if err := a.backend.Delete(ctx, a.key); err != nil {
		return fmt.Errorf("delete %s: %w", a.key, err)
	}
	return nil
}

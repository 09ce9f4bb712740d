package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"tracker/internal/core"
	"tracker/internal/store"
)

// Notifier receives ledger events after a successful mutation.
type Notifier interface {
	PublishLedgerEvent(ctx context.Context, ev core.LedgerEvent) error
}

// LedgerService owns the ledger and its persistence. Every operation holds
// the service lock for its whole mutate, persist, notify sequence, so actions
// never interleave.
type LedgerService struct {
	mu       sync.Mutex
	ledger   *core.Ledger
	store    store.Store
	notifier Notifier
}

// NewLedgerService loads the ledger from st. notifier may be nil.
func NewLedgerService(ctx context.Context, st store.Store, notifier Notifier) *LedgerService {
	s := &LedgerService{
		store:    st,
		notifier: notifier,
	}
	s.ledger = core.NewLedger(st.Load(ctx))
	slog.InfoContext(ctx, "Ledger loaded", "count", s.ledger.Len())
	return s
}

// Reload replaces the in-memory ledger with the stored one, as a page reload
// does.
func (s *LedgerService) Reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Replace(s.store.Load(ctx))
}

// Snapshot returns a copy of the current ledger for rendering.
func (s *LedgerService) Snapshot() *core.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Clone()
}

// Add appends a validated expense and persists the ledger. Validation errors
// (core.ErrEmptyName, core.ErrInvalidAmount) leave everything untouched.
func (s *LedgerService) Add(ctx context.Context, name string, amount core.Money) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.ledger.Add(name, amount)
	if err != nil {
		return core.Expense{}, err
	}
	if err := s.persist(ctx, core.EventAdded); err != nil {
		return e, err
	}

	slog.InfoContext(ctx, "Expense added",
		"id", e.ID,
		"name", e.Name,
		"amount_cents", e.Amount.Cents,
		"count", s.ledger.Len())
	s.notify(ctx, core.EventAdded, &e)
	return e, nil
}

// DeleteAt removes the expense at index. ok is false for an out-of-range
// index, in which case nothing is persisted.
func (s *LedgerService) DeleteAt(ctx context.Context, index int) (removed core.Expense, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, ok = s.ledger.DeleteAt(index)
	if !ok {
		slog.DebugContext(ctx, "Delete index out of range", "index", index, "count", s.ledger.Len())
		return core.Expense{}, false, nil
	}
	return removed, true, s.afterDelete(ctx, removed, index)
}

// Delete removes the expense with the given ID. ok is false when no such
// record exists.
func (s *LedgerService) Delete(ctx context.Context, id string) (removed core.Expense, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, index, ok := s.ledger.Delete(id)
	if !ok {
		slog.DebugContext(ctx, "Delete of unknown expense", "id", id)
		return core.Expense{}, false, nil
	}
	return removed, true, s.afterDelete(ctx, removed, index)
}

func (s *LedgerService) afterDelete(ctx context.Context, removed core.Expense, index int) error {
	if err := s.persist(ctx, core.EventDeleted); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Expense deleted",
		"id", removed.ID,
		"index", index,
		"name", removed.Name,
		"count", s.ledger.Len())
	s.notify(ctx, core.EventDeleted, &removed)
	return nil
}

// ClearAll empties the ledger and removes the stored key, but only if confirm
// returns true. A nil confirm counts as declined. cleared reports whether the
// ledger was emptied.
func (s *LedgerService) ClearAll(ctx context.Context, confirm func() bool) (cleared bool, err error) {
	if confirm == nil || !confirm() {
		slog.DebugContext(ctx, "Clear all declined")
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.ledger.Len()
	s.ledger.Clear()
	if err := s.persist(ctx, core.EventCleared); err != nil {
		return true, err
	}
	slog.InfoContext(ctx, "Ledger cleared", "removed", n)
	s.notify(ctx, core.EventCleared, nil)
	return true, nil
}

// persist is the single write path. Clearing removes the stored key; every
// other mutation overwrites it with the full list.
func (s *LedgerService) persist(ctx context.Context, t core.EventType) error {
	if t == core.EventCleared {
		if err := s.store.Clear(ctx); err != nil {
			return fmt.Errorf("clear store: %w", err)
		}
		return nil
	}
	if err := s.store.Save(ctx, s.ledger.Records()); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

func (s *LedgerService) notify(ctx context.Context, t core.EventType, e *core.Expense) {
	if s.notifier == nil {
		return
	}
	ev := core.LedgerEvent{
		Type:    t,
		Expense: e,
		Count:   s.ledger.Len(),
		Total:   s.ledger.Total(),
	}
	if err := s.notifier.PublishLedgerEvent(ctx, ev); err != nil {
		// Don't fail the operation - the ledger is already persisted
		slog.ErrorContext(ctx, "Failed to publish ledger event", "type", t, "error", err)
	}
}

package core

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

const (
	EventAdded   EventType = "added"
	EventDeleted EventType = "deleted"
	EventCleared EventType = "cleared"
)

type (
	EventType string

	Money struct {
		Cents int64
	}

	// Expense is one named amount in the ledger. ID is assigned per session
	// and never persisted; position in the ledger is the durable identity.
	Expense struct {
		ID     string
		Name   string
		Amount Money
	}

	// LedgerEvent describes a completed mutation of the ledger.
	LedgerEvent struct {
		Type    EventType
		Expense *Expense // nil for EventCleared
		Count   int      // ledger length after the mutation
		Total   Money    // ledger total after the mutation
	}
)

var (
	ErrEmptyName     = errors.New("empty name")
	ErrInvalidAmount = errors.New("invalid amount")
)

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	return nil
}

// NewExpense trims the name, validates the record and assigns a fresh ID.
func NewExpense(name string, amount Money) (Expense, error) {
	e := Expense{
		ID:     NewID(),
		Name:   strings.TrimSpace(name),
		Amount: amount,
	}
	if err := e.Validate(); err != nil {
		return Expense{}, err
	}
	return e, nil
}

// NewID returns a random record identifier.
func NewID() string {
	return uuid.NewString()
}

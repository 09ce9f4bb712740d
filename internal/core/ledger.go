package core

// Ledger is the ordered, in-memory list of expenses. Display order is
// insertion order. A Ledger is not safe for concurrent use; callers serialize
// access.
type Ledger struct {
	items []Expense
}

// NewLedger builds a ledger from previously stored records. Records are kept
// as they are, without re-validation; missing IDs are assigned.
func NewLedger(items []Expense) *Ledger {
	l := &Ledger{}
	l.Replace(items)
	return l
}

// Replace discards the current contents and adopts a copy of items. A record
// without an ID keeps the ID of the current record at the same position when
// name and amount match, so rows rendered before a reload stay addressable.
func (l *Ledger) Replace(items []Expense) {
	prev := l.items
	l.items = make([]Expense, 0, len(items))
	for i, e := range items {
		if e.ID == "" {
			if i < len(prev) && prev[i].Name == e.Name && prev[i].Amount == e.Amount {
				e.ID = prev[i].ID
			} else {
				e.ID = NewID()
			}
		}
		l.items = append(l.items, e)
	}
}

// Add appends a new record. An empty name (after trimming), a non-positive
// amount or one that would overflow the total leaves the ledger unchanged and
// returns the validation error.
func (l *Ledger) Add(name string, amount Money) (Expense, error) {
	e, err := NewExpense(name, amount)
	if err != nil {
		return Expense{}, err
	}
	if _, ok := l.Total().CheckedAdd(e.Amount); !ok {
		return Expense{}, ErrInvalidAmount
	}
	l.items = append(l.items, e)
	return e, nil
}

// DeleteAt removes the record at index. Out-of-range indexes are a no-op.
func (l *Ledger) DeleteAt(index int) (Expense, bool) {
	if index < 0 || index >= len(l.items) {
		return Expense{}, false
	}
	removed := l.items[index]
	l.items = append(l.items[:index], l.items[index+1:]...)
	return removed, true
}

// Delete removes the record with the given ID and reports the position it
// occupied.
func (l *Ledger) Delete(id string) (Expense, int, bool) {
	i := l.Index(id)
	if i < 0 {
		return Expense{}, -1, false
	}
	removed, _ := l.DeleteAt(i)
	return removed, i, true
}

// Index returns the position of the record with the given ID, or -1.
func (l *Ledger) Index(id string) int {
	if id == "" {
		return -1
	}
	for i, e := range l.items {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Clear empties the ledger.
func (l *Ledger) Clear() {
	l.items = nil
}

// Total is the sum of all amounts; zero for an empty ledger.
func (l *Ledger) Total() Money {
	var total Money
	for _, e := range l.items {
		total = total.Add(e.Amount)
	}
	return total
}

func (l *Ledger) Len() int {
	return len(l.items)
}

// Records returns a copy of the records in display order.
func (l *Ledger) Records() []Expense {
	out := make([]Expense, len(l.items))
	copy(out, l.items)
	return out
}

// Clone returns an independent copy of the ledger, IDs included.
func (l *Ledger) Clone() *Ledger {
	return &Ledger{items: l.Records()}
}

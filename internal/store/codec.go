package store

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"tracker/internal/core"
)

// record is the stored shape of one expense: {"name": string, "amount": number}.
type record struct {
	Name   string      `json:"name"`
	Amount json.Number `json:"amount"`
}

// Encode serializes the records as a JSON array. Amounts are written as plain
// JSON numbers (3.5, 12.99); IDs are not stored.
func Encode(items []core.Expense) ([]byte, error) {
	recs := make([]record, len(items))
	for i, e := range items {
		recs[i] = record{Name: e.Name, Amount: json.Number(e.Amount.Decimal().String())}
	}
	return json.Marshal(recs)
}

// Decode parses a JSON array of records. Records are not validated; a missing
// amount decodes as zero. Amounts too large to hold in cents fail the decode.
// IDs are left empty for the ledger to assign.
func Decode(raw []byte) ([]core.Expense, error) {
	var recs []record
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, err
	}
	if recs == nil {
		// JSON null
		return nil, fmt.Errorf("stored value is not a list")
	}
	items := make([]core.Expense, 0, len(recs))
	for i, r := range recs {
		var amount core.Money
		if r.Amount != "" {
			d, err := decimal.NewFromString(r.Amount.String())
			if err != nil {
				return nil, fmt.Errorf("record %d: amount %q: %w", i, r.Amount, err)
			}
			if amount, err = core.MoneyFromDecimal(d); err != nil {
				return nil, fmt.Errorf("record %d: amount %q: %w", i, r.Amount, err)
			}
		}
		items = append(items, core.Expense{Name: r.Name, Amount: amount})
	}
	return items, nil
}

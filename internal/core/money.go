// Package core provides the expense ledger domain.
//
// This file contains functions for parsing monetary amounts from strings
// and converting between cents and decimal representations.
package core

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// maxAmount bounds a single amount, in currency units. Totals are checked
// separately in Ledger.Add.
var maxAmount = decimal.New(1, 12)

// Exponent window accepted before any rounding. Rescaling a decimal costs time
// and memory proportional to its exponent.
const (
	minExponent = -20
	maxExponent = 15
)

// ParseAmount converts a decimal string to Money with half-up rounding to cents.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. The result
// is always positive: empty, non-numeric, negative, zero, or amounts that round
// to zero return ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("12.34")  -> 1234 cents
//	ParseAmount("12,34")  -> 1234 cents
//	ParseAmount("12.345") -> 1235 cents
//	ParseAmount("0.004")  -> ErrInvalidAmount
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return moneyFromDecimal(d)
}

// MoneyFromFloat converts a float amount, rejecting NaN, infinities and
// non-positive values.
func MoneyFromFloat(f float64) (Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Money{}, ErrInvalidAmount
	}
	return moneyFromDecimal(decimal.NewFromFloat(f))
}

func moneyFromDecimal(d decimal.Decimal) (Money, error) {
	m, err := MoneyFromDecimal(d)
	if err != nil || m.Cents <= 0 {
		return Money{}, ErrInvalidAmount
	}
	return m, nil
}

// MoneyFromDecimal converts a stored amount. Zero and negative values are
// kept as they are; only amounts that cannot be represented in cents are
// rejected.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if exp := d.Exponent(); exp < minExponent || exp > maxExponent {
		return Money{}, ErrInvalidAmount
	}
	d = d.Round(2)
	if d.Abs().GreaterThan(maxAmount) {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: d.Shift(2).IntPart()}, nil
}

// Decimal returns the exact decimal value of the amount.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// Float64 returns the amount as a float64 for display purposes.
// Use cents for calculations.
func (m Money) Float64() float64 {
	return float64(m.Cents) / 100.0
}

// Add returns the sum of two amounts, saturating at the int64 limits.
func (m Money) Add(o Money) Money {
	sum, ok := m.CheckedAdd(o)
	if ok {
		return sum
	}
	if o.Cents > 0 {
		return Money{Cents: math.MaxInt64}
	}
	return Money{Cents: math.MinInt64}
}

// CheckedAdd returns the sum and false if it overflows int64.
func (m Money) CheckedAdd(o Money) (Money, bool) {
	sum := m.Cents + o.Cents
	if (o.Cents > 0 && sum < m.Cents) || (o.Cents < 0 && sum > m.Cents) {
		return Money{}, false
	}
	return Money{Cents: sum}, true
}

// String formats the amount with exactly two decimals, e.g. "12.99".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

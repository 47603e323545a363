package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates which way money moved.
type Direction string

const (
	DirectionCredit Direction = "credit" // money in
	DirectionDebit  Direction = "debit"  // money out
)

// Transaction is one immutable ledger record. The engine only ever reads
// snapshots of these; it never mutates them.
type Transaction struct {
	ID          string
	Date        time.Time
	Description string
	Amount      decimal.Decimal // always positive; Direction carries the sign
	Direction   Direction
	Category    string
	Payer       string
	Split       map[string]decimal.Decimal // participant -> owed share
	Settled     bool
	Source      string // where the record came from (csv, manual, ...)
}

// IsShared reports whether the transaction is split across participants.
func (t Transaction) IsShared() bool {
	return len(t.Split) > 0
}

// Signed returns the amount with its direction applied (credit positive,
// debit negative).
func (t Transaction) Signed() decimal.Decimal {
	if t.Direction == DirectionDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Valid reports whether the record carries the minimum fields aggregate
// computations rely on. Invalid records are skipped, not fatal.
func (t Transaction) Valid() bool {
	if t.Date.IsZero() {
		return false
	}
	if !t.Amount.IsPositive() {
		return false
	}
	if t.IsShared() && t.Payer == "" {
		return false
	}
	return true
}

// DailyFlow is one day of aggregated money movement, the input unit for
// trend forecasting.
type DailyFlow struct {
	Date    time.Time
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Package model defines the canonical transaction, the classified ledger and
// the analysis filter.
package model

import (
	"crypto/sha256"
	"fmt"
	"math"
	"time"
)

// Placeholder values used when a source does not provide a field.
const (
	DefaultDescription = "N/A"
	DefaultCategory    = "Uncategorized"
)

// Transaction represents a single financial transaction from any source.
//
// IsIncome and ActualAmount are derived by classification and can only be
// set through Classify, so the sign of ActualAmount always agrees with
// IsIncome.
type Transaction struct {
	Date        time.Time
	Description string
	Category    string
	Source      string // File the transaction was read from
	Amount      float64

	isIncome     bool
	actualAmount float64
	classified   bool
}

// Month returns the year-month bucket of the transaction date.
func (t Transaction) Month() Month {
	return MonthOf(t.Date)
}

// Year returns the year bucket of the transaction date.
func (t Transaction) Year() int {
	return t.Date.Year()
}

// IsIncome reports whether classification marked the transaction as income.
func (t Transaction) IsIncome() bool {
	return t.isIncome
}

// ActualAmount is the signed amount: positive for income, negative for expense.
func (t Transaction) ActualAmount() float64 {
	return t.actualAmount
}

// Classified reports whether Classify has been applied.
func (t Transaction) Classified() bool {
	return t.classified
}

// Classify returns a copy of the transaction with its polarity set. A NaN
// or infinite amount contributes zero.
func (t Transaction) Classify(isIncome bool) Transaction {
	magnitude := math.Abs(t.Amount)
	if math.IsNaN(magnitude) || math.IsInf(magnitude, 0) {
		magnitude = 0
	}

	t.isIncome = isIncome
	t.classified = true
	if isIncome {
		t.actualAmount = magnitude
	} else {
		t.actualAmount = -magnitude
	}
	return t
}

// Hash identifies a transaction for duplicate detection across sources.
func (t Transaction) Hash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Description,
		t.Category)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

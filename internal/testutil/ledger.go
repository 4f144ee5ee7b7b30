// Package testutil provides fluent builders for classified ledgers used by
// the analytics tests.
//
// Example:
//
//	ledger := testutil.NewLedgerBuilder(t).
//		Income("2024-01-05", 1000, "Salary credited", testutil.CategoryIncome).
//		Expense("2024-01-09", 200, "Grocery", testutil.CategoryFood).
//		Build()
package testutil

import (
	"testing"
	"time"

	"github.com/Veraticus/finsight/internal/model"
)

// Common category names used across tests.
const (
	CategoryIncome    = "Income"
	CategoryFood      = "Food"
	CategoryRent      = "Rent"
	CategoryTransport = "Transport"
	CategoryUtilities = "Utilities"
	CategoryShopping  = "Shopping"
	CategoryTravel    = "Travel"
	CategoryHealth    = "Health"
)

// LedgerBuilder accumulates classified transactions.
type LedgerBuilder struct {
	t    testing.TB
	txns []model.Transaction
}

// NewLedgerBuilder starts an empty ledger.
func NewLedgerBuilder(t testing.TB) *LedgerBuilder {
	t.Helper()
	return &LedgerBuilder{t: t}
}

// Income adds an income transaction. Dates use the 2006-01-02 layout.
func (b *LedgerBuilder) Income(date string, amount float64, description, category string) *LedgerBuilder {
	b.t.Helper()
	return b.add(date, amount, description, category, true)
}

// Expense adds an expense transaction.
func (b *LedgerBuilder) Expense(date string, amount float64, description, category string) *LedgerBuilder {
	b.t.Helper()
	return b.add(date, amount, description, category, false)
}

// MonthlyExpenses adds one expense on the first of each consecutive month
// starting at start ("2006-01").
func (b *LedgerBuilder) MonthlyExpenses(start string, category string, amounts ...float64) *LedgerBuilder {
	b.t.Helper()
	m, err := model.ParseMonth(start)
	if err != nil {
		b.t.Fatalf("invalid month %q: %v", start, err)
	}
	for _, amount := range amounts {
		b.add(m.String()+"-01", amount, "expense "+m.String(), category, false)
		m = m.Next()
	}
	return b
}

// Transactions returns the accumulated transactions.
func (b *LedgerBuilder) Transactions() []model.Transaction {
	out := make([]model.Transaction, len(b.txns))
	copy(out, b.txns)
	return out
}

// Build returns the ledger.
func (b *LedgerBuilder) Build() *model.Ledger {
	return model.NewLedger(b.txns)
}

func (b *LedgerBuilder) add(date string, amount float64, description, category string, income bool) *LedgerBuilder {
	b.t.Helper()
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		b.t.Fatalf("invalid date %q: %v", date, err)
	}
	txn := model.Transaction{
		Date:        d,
		Amount:      amount,
		Description: description,
		Category:    category,
		Source:      "test",
	}
	b.txns = append(b.txns, txn.Classify(income))
	return b
}

package model

import "sort"

// Ledger is an ordered, read-only collection of transactions for one
// analysis session. Filtering returns a new ledger; nothing mutates one in
// place, so a ledger can be shared between concurrent analyses.
type Ledger struct {
	txns []Transaction
}

// NewLedger copies txns into a ledger ordered by date. Transactions on the
// same date keep their source order.
func NewLedger(txns []Transaction) *Ledger {
	owned := make([]Transaction, len(txns))
	copy(owned, txns)
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].Date.Before(owned[j].Date)
	})
	return &Ledger{txns: owned}
}

// Len returns the number of transactions.
func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.txns)
}

// Transactions returns a copy of the transactions.
func (l *Ledger) Transactions() []Transaction {
	if l == nil {
		return nil
	}
	out := make([]Transaction, len(l.txns))
	copy(out, l.txns)
	return out
}

// At returns the i-th transaction.
func (l *Ledger) At(i int) Transaction {
	return l.txns[i]
}

// Filter returns the transactions for which keep returns true.
func (l *Ledger) Filter(keep func(Transaction) bool) *Ledger {
	out := &Ledger{}
	if l == nil {
		return out
	}
	for _, t := range l.txns {
		if keep(t) {
			out.txns = append(out.txns, t)
		}
	}
	return out
}

// ForYear applies a year filter. YearAll returns the ledger unchanged.
func (l *Ledger) ForYear(year YearFilter) *Ledger {
	if year.All() {
		if l == nil {
			return &Ledger{}
		}
		return l
	}
	return l.Filter(func(t Transaction) bool {
		return t.Year() == year.Year()
	})
}

// Years returns the distinct years present, ascending.
func (l *Ledger) Years() []int {
	seen := make(map[int]bool)
	var years []int
	for _, t := range l.Transactions() {
		if !seen[t.Year()] {
			seen[t.Year()] = true
			years = append(years, t.Year())
		}
	}
	sort.Ints(years)
	return years
}

// Months returns the distinct months present, ascending.
func (l *Ledger) Months() []Month {
	seen := make(map[Month]bool)
	var months []Month
	for _, t := range l.Transactions() {
		m := t.Month()
		if !seen[m] {
			seen[m] = true
			months = append(months, m)
		}
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Before(months[j])
	})
	return months
}

// Package aggregate computes time-bucketed and per-category figures over a
// classified ledger. Every function accepts an empty ledger and returns
// zero values or not-applicable markers for it.
package aggregate

import (
	"sort"

	"github.com/Veraticus/finsight/internal/model"
	"github.com/shopspring/decimal"
)

// Totals is income, expense and net over a set of transactions. Expense is
// a positive magnitude.
type Totals struct {
	Income  float64
	Expense float64
	Net     float64
}

// sums accumulates income and expense without float drift.
type sums struct {
	income  decimal.Decimal
	expense decimal.Decimal
}

func (s *sums) add(t model.Transaction) {
	amount := decimal.NewFromFloat(t.ActualAmount())
	switch {
	case amount.IsPositive():
		s.income = s.income.Add(amount)
	case amount.IsNegative():
		s.expense = s.expense.Add(amount.Abs())
	}
}

func (s sums) totals() Totals {
	return Totals{
		Income:  s.income.InexactFloat64(),
		Expense: s.expense.InexactFloat64(),
		Net:     s.income.Sub(s.expense).InexactFloat64(),
	}
}

// ComputeTotals sums the ledger.
func ComputeTotals(ledger *model.Ledger) Totals {
	var s sums
	for _, t := range ledger.Transactions() {
		s.add(t)
	}
	return s.totals()
}

// MonthPoint is one month of the monthly series. Savings is income minus
// expense.
type MonthPoint struct {
	Month   model.Month
	Income  float64
	Expense float64
	Savings float64
}

// Monthly returns one point per month from the first to the last observed
// month, with gaps zero-filled.
func Monthly(ledger *model.Ledger) []MonthPoint {
	months := ledger.Months()
	if len(months) == 0 {
		return nil
	}

	buckets := make(map[model.Month]*sums)
	for _, t := range ledger.Transactions() {
		s, ok := buckets[t.Month()]
		if !ok {
			s = &sums{}
			buckets[t.Month()] = s
		}
		s.add(t)
	}

	span := model.MonthSpan(months[0], months[len(months)-1])
	points := make([]MonthPoint, len(span))
	for i, m := range span {
		var tot Totals
		if s, ok := buckets[m]; ok {
			tot = s.totals()
		}
		points[i] = MonthPoint{Month: m, Income: tot.Income, Expense: tot.Expense, Savings: tot.Net}
	}
	return points
}

// YearPoint is one year of the yearly series.
type YearPoint struct {
	Year int
	Totals
}

// Yearly returns one point per year from the first to the last observed
// year, with gaps zero-filled. Callers pass the full ledger: yearly context
// ignores the active year filter.
func Yearly(ledger *model.Ledger) []YearPoint {
	years := ledger.Years()
	if len(years) == 0 {
		return nil
	}

	buckets := make(map[int]*sums)
	for _, t := range ledger.Transactions() {
		s, ok := buckets[t.Year()]
		if !ok {
			s = &sums{}
			buckets[t.Year()] = s
		}
		s.add(t)
	}

	span := model.YearSpan(years[0], years[len(years)-1])
	points := make([]YearPoint, len(span))
	for i, y := range span {
		points[i] = YearPoint{Year: y}
		if s, ok := buckets[y]; ok {
			points[i].Totals = s.totals()
		}
	}
	return points
}

// YearTotals returns the totals for one year, zero when absent.
func YearTotals(points []YearPoint, year int) Totals {
	i := sort.Search(len(points), func(i int) bool { return points[i].Year >= year })
	if i < len(points) && points[i].Year == year {
		return points[i].Totals
	}
	return Totals{}
}
